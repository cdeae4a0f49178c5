package node

import "github.com/samber/lo"

const (
	Category = "CineFlow/API"
	Function = "generate"

	Gemini = "CineFlow_VertexGemini"
	Imagen = "CineFlow_VertexImagen"
	Veo    = "CineFlow_VertexVeo"
	Jimeng = "CineFlow_ArkJimeng"
)

// Input types understood by the host.
const (
	String = "STRING"
	Int    = "INT"
	Float  = "FLOAT"
	Image  = "IMAGE"
)

type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Input declares one keyword argument of a node. Choices, when set, is the
// closed list of accepted values and renders as a dropdown.
type Input struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Required  bool   `json:"required"`
	Default   any    `json:"default,omitempty"`
	Choices   []any  `json:"choices,omitempty"`
	Range     *Range `json:"range,omitempty"`
	Multiline bool   `json:"multiline,omitempty"`
}

type Definition struct {
	Class       string  `json:"class"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category"`
	Function    string  `json:"function"`
	ReturnType  string  `json:"return_type"`
	ReturnName  string  `json:"return_name"`
	OutputNode  bool    `json:"output_node,omitempty"`
	Inputs      []Input `json:"inputs"`
}

func (d Definition) Input(name string) (Input, bool) {
	for _, in := range d.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return Input{}, false
}

// Lookup finds a node definition by class.
func Lookup(class string) (Definition, bool) {
	return lo.Find(Definitions, func(d Definition) bool { return d.Class == class })
}

func project() Input { return Input{Name: "project_id", Type: String, Default: ""} }
func location() Input { return Input{Name: "location", Type: String, Default: "us-central1"} }

// Definitions lists every node in registration order.
var Definitions = []Definition{
	{
		Class:       Gemini,
		DisplayName: "🎨 Vertex AI Gemini (CineFlow)",
		Category:    Category,
		Function:    Function,
		ReturnType:  Image,
		ReturnName:  "image",
		Inputs: []Input{
			{Name: "prompt", Type: String, Required: true, Default: "A beautiful landscape", Multiline: true},
			{Name: "model", Type: String, Required: true, Default: "gemini-2.0-flash-exp", Choices: []any{"gemini-2.0-flash-exp", "gemini-2.0-flash"}},
			project(),
			location(),
			{Name: "temperature", Type: Float, Default: 1.0, Range: &Range{Min: 0, Max: 2, Step: 0.1}},
		},
	},
	{
		Class:       Imagen,
		DisplayName: "🚀 Vertex AI Imagen 3 (CineFlow)",
		Category:    Category,
		Function:    Function,
		ReturnType:  Image,
		ReturnName:  "image",
		Inputs: []Input{
			{Name: "prompt", Type: String, Required: true, Default: "A beautiful landscape", Multiline: true},
			{Name: "aspect_ratio", Type: String, Required: true, Default: "16:9", Choices: []any{"16:9", "9:16", "1:1", "4:3"}},
			{Name: "negative_prompt", Type: String, Default: "blurry, low quality", Multiline: true},
			project(),
			location(),
		},
	},
	{
		Class:       Veo,
		DisplayName: "🎬 Vertex AI Veo 3.1 (CineFlow)",
		Category:    Category,
		Function:    Function,
		ReturnType:  String,
		ReturnName:  "video_path",
		OutputNode:  true,
		Inputs: []Input{
			{Name: "prompt", Type: String, Required: true, Default: "A cinematic scene", Multiline: true},
			{Name: "model", Type: String, Required: true, Default: "veo-3.1-fast", Choices: []any{"veo-3.1-fast", "veo-3.1"}},
			{Name: "duration", Type: Int, Required: true, Default: 6, Choices: []any{5, 6, 8, 10}},
			{Name: "aspect_ratio", Type: String, Required: true, Default: "16:9", Choices: []any{"16:9", "9:16", "1:1"}},
			{Name: "reference_image", Type: Image},
			project(),
			location(),
		},
	},
	{
		Class:       Jimeng,
		DisplayName: "🎨 火山方舟 即梦 (CineFlow)",
		Category:    Category,
		Function:    Function,
		ReturnType:  Image,
		ReturnName:  "image",
		Inputs: []Input{
			{Name: "prompt", Type: String, Required: true, Default: "一幅美丽的风景画", Multiline: true},
			{Name: "size", Type: String, Required: true, Default: "1920x1080", Choices: []any{"1920x1080", "1080x1920", "1024x1024", "1024x768"}},
			{Name: "api_key", Type: String, Default: ""},
			{Name: "endpoint_id", Type: String, Default: ""},
		},
	},
}

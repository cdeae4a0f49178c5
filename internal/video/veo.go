package video

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/tensor"
	"github.com/dmorgan81/cineflow/internal/vertex"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	veoName = "Veo"

	ModelQuality = "veo-3.1"
	ModelFast    = "veo-3.1-fast"

	DefaultDuration    = 6
	DefaultAspectRatio = "16:9"
)

type veoRequest struct {
	Instances  []veoInstance `json:"instances"`
	Parameters veoParameters `json:"parameters"`
}

type veoInstance struct {
	Prompt         string    `json:"prompt"`
	ReferenceImage *veoImage `json:"referenceImage,omitempty"`
}

type veoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
}

type veoParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
	Duration    int    `json:"duration"`
}

// VeoGenerator renders a clip with Veo 3.1 and writes it to a fresh .mp4
// under Config.VideoDir. The caller owns the returned file.
type VeoGenerator struct {
	Vertex *vertex.Client
	Config *config.Config
}

func NewVeoGenerator(i *do.Injector) (provider.Generator, error) {
	return &VeoGenerator{
		Vertex: do.MustInvoke[*vertex.Client](i),
		Config: do.MustInvoke[*config.Config](i),
	}, nil
}

// ModelID maps the node's model choice to the Vertex AI model id. Anything
// other than the quality tier selects the fast tier.
func ModelID(model string) string {
	return lo.Ternary(model == ModelQuality, "veo-3.1-001", "veo-3.1-fast-001")
}

func (g *VeoGenerator) Generate(ctx context.Context, req provider.Request) (provider.Artifact, error) {
	model := ModelID(req.Model)
	log := log.FromContextOrDiscard(ctx).WithGroup("veo").With("model", model)

	instance := veoInstance{Prompt: req.Prompt}
	if req.ReferenceImage != nil {
		ref, err := tensor.EncodePNG(req.ReferenceImage)
		if err != nil {
			return provider.Artifact{}, fmt.Errorf("encoding reference image: %w", err)
		}
		instance.ReferenceImage = &veoImage{BytesBase64Encoded: base64.StdEncoding.EncodeToString(ref)}
	}

	body := veoRequest{
		Instances: []veoInstance{instance},
		Parameters: veoParameters{
			SampleCount: 1,
			AspectRatio: lo.Ternary(req.AspectRatio != "", req.AspectRatio, DefaultAspectRatio),
			Duration:    lo.Ternary(req.Duration > 0, req.Duration, DefaultDuration),
		},
	}
	log.Info("generating video via vertex ai",
		"duration", body.Parameters.Duration,
		"aspect_ratio", body.Parameters.AspectRatio,
		"reference_image", instance.ReferenceImage != nil)

	data, err := g.Vertex.Call(ctx, veoName, req, model, "predict", body)
	if err != nil {
		return provider.Artifact{}, err
	}
	if !gjson.ValidBytes(data) {
		return provider.Artifact{}, fmt.Errorf("decoding %s response: invalid JSON", veoName)
	}

	encoded := gjson.GetBytes(data, "predictions.0.bytesBase64Encoded")
	if !encoded.Exists() {
		return provider.Artifact{}, &provider.EmptyResponseError{Provider: veoName, Artifact: "video"}
	}
	raw, err := provider.DecodeBase64(veoName, encoded.String())
	if err != nil {
		return provider.Artifact{}, err
	}

	path, err := g.write(raw)
	if err != nil {
		return provider.Artifact{}, err
	}
	log.Info("saved video", "path", path, "bytes", len(raw))
	return provider.Artifact{Video: &provider.VideoFile{Path: path}}, nil
}

func (g *VeoGenerator) write(data []byte) (string, error) {
	f, err := os.CreateTemp(g.Config.VideoDir, "cineflow-*.mp4")
	if err != nil {
		return "", fmt.Errorf("creating video file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing video file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing video file: %w", err)
	}
	return f.Name(), nil
}

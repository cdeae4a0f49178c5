package node

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/tensor"
	"github.com/samber/lo"
)

// Inputs are the keyword arguments of one invocation. Values arrive either
// typed (in-process) or as decoded JSON (float64 numbers, base64 strings).
type Inputs map[string]any

type InputError struct {
	Node   string
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %s", e.Node, e.Reason)
	}
	return fmt.Sprintf("%s: input %q %s", e.Node, e.Input, e.Reason)
}

// resolve applies defaults, coerces each value to its declared type and
// checks choices and ranges.
func resolve(def Definition, in Inputs) (map[string]any, error) {
	out := make(map[string]any, len(def.Inputs))
	for _, decl := range def.Inputs {
		raw, ok := in[decl.Name]
		if !ok || raw == nil {
			if decl.Default == nil && decl.Type != Image {
				return nil, &InputError{Node: def.Class, Input: decl.Name, Reason: "is required"}
			}
			raw = decl.Default
		}
		if raw == nil {
			continue
		}

		v, err := coerce(decl, raw)
		if err != nil {
			return nil, &InputError{Node: def.Class, Input: decl.Name, Reason: err.Error()}
		}
		if len(decl.Choices) > 0 && !lo.Contains(decl.Choices, v) {
			return nil, &InputError{Node: def.Class, Input: decl.Name, Reason: fmt.Sprintf("must be one of %v, got %v", decl.Choices, v)}
		}
		if r := decl.Range; r != nil {
			f := v.(float64)
			if math.IsNaN(f) || f < r.Min || f > r.Max {
				return nil, &InputError{Node: def.Class, Input: decl.Name, Reason: fmt.Sprintf("must be between %g and %g, got %g", r.Min, r.Max, f)}
			}
		}
		out[decl.Name] = v
	}
	return out, nil
}

func coerce(decl Input, raw any) (any, error) {
	switch decl.Type {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string, got %T", raw)
		}
		return s, nil
	case Int:
		f, err := number(raw)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("must be an integer, got %g", f)
		}
		return int(f), nil
	case Float:
		return number(raw)
	case Image:
		switch v := raw.(type) {
		case *tensor.Image:
			return v, nil
		case string:
			data, err := provider.DecodeBase64("reference image", v)
			if err != nil {
				return nil, err
			}
			return tensor.FromBytes(data)
		}
		return nil, fmt.Errorf("must be an image or base64 image bytes, got %T", raw)
	}
	return nil, fmt.Errorf("has unknown type %s", decl.Type)
}

func number(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	}
	return 0, fmt.Errorf("must be a number, got %T", raw)
}

func request(values map[string]any) provider.Request {
	str := func(k string) string {
		s, _ := values[k].(string)
		return s
	}
	req := provider.Request{
		Prompt:         str("prompt"),
		NegativePrompt: str("negative_prompt"),
		Model:          str("model"),
		Size:           str("size"),
		AspectRatio:    str("aspect_ratio"),
		ProjectID:      str("project_id"),
		Location:       str("location"),
		APIKey:         str("api_key"),
		EndpointID:     str("endpoint_id"),
	}
	req.Duration, _ = values["duration"].(int)
	req.Temperature, _ = values["temperature"].(float64)
	req.ReferenceImage, _ = values["reference_image"].(*tensor.Image)
	return req
}

package image

import (
	"context"
	"fmt"

	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/vertex"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	imagenName               = "Imagen"
	ImagenModel              = "imagen-3.0-generate-001"
	DefaultImagenAspectRatio = "16:9"
	FallbackNegativePrompt   = "blurry, low quality, distorted"
)

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio"`
	NegativePrompt string `json:"negativePrompt"`
}

type ImagenGenerator struct {
	Vertex *vertex.Client
}

func NewImagenGenerator(i *do.Injector) (provider.Generator, error) {
	return &ImagenGenerator{Vertex: do.MustInvoke[*vertex.Client](i)}, nil
}

func (g *ImagenGenerator) Generate(ctx context.Context, req provider.Request) (provider.Artifact, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("imagen").With("model", ImagenModel)
	log.Info("generating image via vertex ai", "aspect_ratio", req.AspectRatio)

	body := imagenRequest{
		Instances: []imagenInstance{{Prompt: req.Prompt}},
		Parameters: imagenParameters{
			SampleCount:    1,
			AspectRatio:    lo.Ternary(req.AspectRatio != "", req.AspectRatio, DefaultImagenAspectRatio),
			NegativePrompt: lo.Ternary(req.NegativePrompt != "", req.NegativePrompt, FallbackNegativePrompt),
		},
	}

	data, err := g.Vertex.Call(ctx, imagenName, req, ImagenModel, "predict", body)
	if err != nil {
		return provider.Artifact{}, err
	}
	if !gjson.ValidBytes(data) {
		return provider.Artifact{}, fmt.Errorf("decoding %s response: invalid JSON", imagenName)
	}

	encoded := gjson.GetBytes(data, "predictions.0.bytesBase64Encoded")
	if !encoded.Exists() {
		return provider.Artifact{}, &provider.EmptyResponseError{Provider: imagenName, Artifact: "image"}
	}
	raw, err := provider.DecodeBase64(imagenName, encoded.String())
	if err != nil {
		return provider.Artifact{}, err
	}
	return artifact(log, imagenName, raw)
}

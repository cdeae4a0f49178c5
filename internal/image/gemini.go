package image

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/vertex"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const (
	geminiName         = "Gemini"
	DefaultGeminiModel = "gemini-2.0-flash-exp"
)

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
	Temperature        float64  `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type GeminiGenerator struct {
	Vertex *vertex.Client
}

func NewGeminiGenerator(i *do.Injector) (provider.Generator, error) {
	return &GeminiGenerator{Vertex: do.MustInvoke[*vertex.Client](i)}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req provider.Request) (provider.Artifact, error) {
	model := lo.Ternary(req.Model != "", req.Model, DefaultGeminiModel)
	log := log.FromContextOrDiscard(ctx).WithGroup("gemini").With("model", model)
	log.Info("generating image via vertex ai", "temperature", req.Temperature)

	body := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: req.Prompt}},
		}},
		GenerationConfig: geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
			Temperature:        req.Temperature,
		},
	}

	data, err := g.Vertex.Call(ctx, geminiName, req, model, "generateContent", body)
	if err != nil {
		return provider.Artifact{}, err
	}

	var resp geminiResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return provider.Artifact{}, fmt.Errorf("decoding %s response: %w", geminiName, err)
	}

	// The first image part wins; text parts are commentary.
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || !strings.HasPrefix(part.InlineData.MimeType, "image/") {
				continue
			}
			raw, err := provider.DecodeBase64(geminiName, part.InlineData.Data)
			if err != nil {
				return provider.Artifact{}, err
			}
			return artifact(log, geminiName, raw)
		}
	}
	return provider.Artifact{}, &provider.EmptyResponseError{Provider: geminiName, Artifact: "image"}
}

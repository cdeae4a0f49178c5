package image

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	jimengName        = "Jimeng"
	JimengURL         = "https://ark.cn-beijing.volces.com/api/v3/images/generations"
	DefaultJimengSize = "1920x1080"
)

type jimengRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

// JimengGenerator calls the Volcano Engine Ark image generation API. The
// first result is either a URL to download or inline base64.
type JimengGenerator struct {
	Client *http.Client
	Config *config.Config
}

func NewJimengGenerator(i *do.Injector) (provider.Generator, error) {
	return &JimengGenerator{
		Client: do.MustInvoke[*http.Client](i),
		Config: do.MustInvoke[*config.Config](i),
	}, nil
}

func (g *JimengGenerator) Generate(ctx context.Context, req provider.Request) (provider.Artifact, error) {
	ark, err := g.Config.Ark(req.APIKey, req.EndpointID)
	if err != nil {
		return provider.Artifact{}, err
	}

	log := log.FromContextOrDiscard(ctx).WithGroup("jimeng").With("endpoint_id", ark.EndpointID)
	log.Info("generating image via ark", "size", req.Size)

	body := jimengRequest{
		Model:  ark.EndpointID,
		Prompt: req.Prompt,
		Size:   lo.Ternary(req.Size != "", req.Size, DefaultJimengSize),
		N:      1,
	}

	data, err := provider.PostJSON(ctx, g.Client, jimengName, JimengURL, ark.APIKey, body)
	if err != nil {
		return provider.Artifact{}, err
	}
	if !gjson.ValidBytes(data) {
		return provider.Artifact{}, fmt.Errorf("decoding %s response: invalid JSON", jimengName)
	}

	first := gjson.GetBytes(data, "data.0")
	if !first.Exists() {
		return provider.Artifact{}, &provider.EmptyResponseError{Provider: jimengName, Artifact: "image"}
	}

	if url := first.Get("url"); url.Exists() {
		log.Debug("downloading image", "url", url.String())
		raw, err := provider.Fetch(ctx, g.Client, jimengName, url.String())
		if err != nil {
			return provider.Artifact{}, err
		}
		return artifact(log, jimengName, raw)
	}
	if encoded := first.Get("b64_json"); encoded.Exists() {
		raw, err := provider.DecodeBase64(jimengName, encoded.String())
		if err != nil {
			return provider.Artifact{}, err
		}
		return artifact(log, jimengName, raw)
	}
	return provider.Artifact{}, &provider.UnsupportedFormatError{Provider: jimengName}
}

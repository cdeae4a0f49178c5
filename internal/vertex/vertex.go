package vertex

import (
	"context"
	"net/http"

	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/credentials"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/samber/do"
)

// Client posts to Vertex AI publisher models on behalf of the Gemini, Imagen
// and Veo generators.
type Client struct {
	HTTP   *http.Client
	Config *config.Config
	Tokens credentials.TokenSource
}

func NewClient(i *do.Injector) (*Client, error) {
	return &Client{
		HTTP:   do.MustInvoke[*http.Client](i),
		Config: do.MustInvoke[*config.Config](i),
		Tokens: do.MustInvoke[credentials.TokenSource](i),
	}, nil
}

// Call resolves the project and location, mints a cloud-platform token and
// POSTs body to model:verb. Nothing goes over the wire when no project can be
// resolved.
func (c *Client) Call(ctx context.Context, name string, req provider.Request, model, verb string, body any) ([]byte, error) {
	v, err := c.Config.Vertex(req.ProjectID, req.Location)
	if err != nil {
		return nil, err
	}

	token, err := c.Tokens.Token(ctx, provider.CloudPlatformScope)
	if err != nil {
		return nil, err
	}

	url := provider.VertexEndpoint(v.Location, v.Project, model, verb)
	log.FromContextOrDiscard(ctx).Debug("calling vertex ai", "provider", name, "url", url)
	return provider.PostJSON(ctx, c.HTTP, name, url, token, body)
}

package vertex

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/provider/providertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall(t *testing.T) {
	client, transport := providertest.NewClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true}`)
	})
	tokens := &providertest.Tokens{Value: "tok"}
	c := &Client{HTTP: client, Config: &config.Config{GoogleCloudProject: "env-proj"}, Tokens: tokens}

	data, err := c.Call(context.Background(), "Imagen", provider.Request{Location: "europe-west4"}, "imagen-3.0-generate-001", "predict", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "https://europe-west4-aiplatform.googleapis.com/v1/projects/env-proj/locations/europe-west4/publishers/google/models/imagen-3.0-generate-001:predict", calls[0].URL)
	assert.Equal(t, "Bearer tok", calls[0].Header.Get("Authorization"))
	assert.JSONEq(t, `{"n":1}`, string(calls[0].Body))
	assert.Equal(t, []string{provider.CloudPlatformScope}, tokens.Scopes())
}

func TestCall_MissingProjectSendsNothing(t *testing.T) {
	client, transport := providertest.NewClient(func(w http.ResponseWriter, r *http.Request) {})
	tokens := &providertest.Tokens{Value: "tok"}
	c := &Client{HTTP: client, Config: &config.Config{}, Tokens: tokens}

	_, err := c.Call(context.Background(), "Gemini", provider.Request{}, "gemini-2.0-flash", "generateContent", struct{}{})
	assert.ErrorIs(t, err, provider.ErrConfiguration)
	assert.Empty(t, transport.Calls())
	assert.Empty(t, tokens.Scopes())
}

func TestCall_TokenError(t *testing.T) {
	client, transport := providertest.NewClient(func(w http.ResponseWriter, r *http.Request) {})
	boom := errors.New("no credentials")
	c := &Client{HTTP: client, Config: &config.Config{GoogleCloudProject: "p"}, Tokens: &providertest.Tokens{Err: boom}}

	_, err := c.Call(context.Background(), "Veo", provider.Request{}, "veo-3.1-001", "predict", struct{}{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, transport.Calls())
}

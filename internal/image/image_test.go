package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/provider/providertest"
	"github.com/dmorgan81/cineflow/internal/vertex"
	"github.com/stretchr/testify/require"
)

// pngBytes encodes a w×h RGBA image whose first pixel is red.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngBase64(t *testing.T, w, h int) string {
	return base64.StdEncoding.EncodeToString(pngBytes(t, w, h))
}

func newVertex(cfg *config.Config, handler http.HandlerFunc) (*vertex.Client, *providertest.Transport, *providertest.Tokens) {
	client, transport := providertest.NewClient(handler)
	tokens := &providertest.Tokens{Value: "tok"}
	return &vertex.Client{HTTP: client, Config: cfg, Tokens: tokens}, transport, tokens
}

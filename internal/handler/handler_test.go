package handler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmorgan81/cineflow/internal/feed"
	"github.com/dmorgan81/cineflow/internal/node"
	"github.com/dmorgan81/cineflow/internal/page"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/store"
	"github.com/dmorgan81/cineflow/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(context.Context, provider.Request) (provider.Artifact, error)

func (f generatorFunc) Generate(ctx context.Context, req provider.Request) (provider.Artifact, error) {
	return f(ctx, req)
}

type uploads struct {
	mu     sync.Mutex
	params map[string]store.UploadParams
	err    error
}

func (u *uploads) Upload(_ context.Context, p store.UploadParams) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.params == nil {
		u.params = map[string]store.UploadParams{}
	}
	u.params[p.Name] = p
	return u.err
}

type invalidations struct {
	paths [][]string
}

func (i *invalidations) Invalidate(_ context.Context, paths []string) error {
	i.paths = append(i.paths, paths)
	return nil
}

// List reports whatever has been uploaded so far, so uploads doubles as a feed source.
func (u *uploads) List(context.Context) ([]feed.Entry, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var entries []feed.Entry
	for name := range u.params {
		entries = append(entries, feed.Entry{Key: name})
	}
	return entries, nil
}

func newHandler(generators map[string]provider.Generator) (*Handler, *uploads, *invalidations) {
	u, inv := &uploads{}, &invalidations{}
	return &Handler{
		registry:    node.New(generators),
		uploader:    u,
		invalidator: inv,
		templator:   &page.Templator{},
		feed:        &feed.Generator{Source: u},
	}, u, inv
}

func TestHandle_Image(t *testing.T) {
	var got provider.Request
	h, u, inv := newHandler(map[string]provider.Generator{
		node.Imagen: generatorFunc(func(_ context.Context, req provider.Request) (provider.Artifact, error) {
			got = req
			img := tensor.New(2, 3)
			img.Set(0, 0, 0, 1)
			return provider.Artifact{Image: img}, nil
		}),
	})

	out, err := h.Handle(context.Background(), Input{
		Node:   node.Imagen,
		Inputs: node.Inputs{"prompt": "a red fox", "aspect_ratio": "1:1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "a red fox", got.Prompt)
	assert.Equal(t, "1:1", got.AspectRatio)

	assert.Equal(t, node.Imagen, out.Node)
	assert.Equal(t, "image", out.Kind)
	assert.Equal(t, 3, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.True(t, strings.HasPrefix(out.Key, node.Imagen+"/"))
	assert.True(t, strings.HasSuffix(out.Key, ".png"))
	assert.Equal(t, strings.TrimSuffix(out.Key, ".png")+".html", out.Page)

	require.Len(t, u.params, 3)
	png := u.params[out.Key]
	assert.Equal(t, "image/png", png.ContentType)
	decoded, err := tensor.FromBytes(png.Data)
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 2, 3, 3}, decoded.Shape())
	assert.Equal(t, map[string]string{"node": node.Imagen, "kind": "image"}, png.Metadata)

	html := u.params[out.Page]
	assert.Equal(t, "text/html", html.ContentType)
	assert.Contains(t, string(html.Data), filepath.Base(out.Key))
	assert.Contains(t, string(html.Data), "a red fox")

	rss := u.params[feed.Key]
	assert.Equal(t, "application/rss+xml", rss.ContentType)
	assert.Contains(t, string(rss.Data), out.Key)

	assert.Equal(t, [][]string{{"/" + out.Key, "/" + out.Page, "/feed.xml"}}, inv.paths)
}

func TestHandle_VideoRemovesFile(t *testing.T) {
	dir := t.TempDir()
	var videoPath string
	h, u, _ := newHandler(map[string]provider.Generator{
		node.Veo: generatorFunc(func(_ context.Context, req provider.Request) (provider.Artifact, error) {
			f, err := os.CreateTemp(dir, "*.mp4")
			if err != nil {
				return provider.Artifact{}, err
			}
			defer f.Close()
			if _, err := f.WriteString("mp4-bytes"); err != nil {
				return provider.Artifact{}, err
			}
			videoPath = f.Name()
			return provider.Artifact{Video: &provider.VideoFile{Path: f.Name()}}, nil
		}),
	})

	out, err := h.Handle(context.Background(), Input{Node: node.Veo})
	require.NoError(t, err)

	assert.Equal(t, "video", out.Kind)
	assert.True(t, strings.HasSuffix(out.Key, ".mp4"))
	assert.Zero(t, out.Width)

	video := u.params[out.Key]
	assert.Equal(t, "video/mp4", video.ContentType)
	assert.Equal(t, []byte("mp4-bytes"), video.Data)
	assert.Contains(t, string(u.params[out.Page].Data), "veo-3.1-fast")
	assert.Contains(t, string(u.params[out.Page].Data), "A cinematic scene")

	assert.NoFileExists(t, videoPath)
}

func TestHandle_Errors(t *testing.T) {
	boom := errors.New("boom")
	h, u, inv := newHandler(map[string]provider.Generator{
		node.Gemini: generatorFunc(func(context.Context, provider.Request) (provider.Artifact, error) {
			return provider.Artifact{}, boom
		}),
		node.Jimeng: generatorFunc(func(context.Context, provider.Request) (provider.Artifact, error) {
			return provider.Artifact{Image: tensor.New(1, 1)}, nil
		}),
	})

	_, err := h.Handle(context.Background(), Input{Node: node.Gemini})
	assert.ErrorIs(t, err, boom)

	_, err = h.Handle(context.Background(), Input{Node: "CineFlow_Missing"})
	var inputErr *node.InputError
	assert.ErrorAs(t, err, &inputErr)

	assert.Empty(t, u.params)
	assert.Empty(t, inv.paths)

	u.err = errors.New("access denied")
	_, err = h.Handle(context.Background(), Input{Node: node.Jimeng})
	assert.EqualError(t, err, "access denied")
	assert.Empty(t, inv.paths)
}

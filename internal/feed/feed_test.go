package feed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entries []Entry

func (e entries) List(context.Context) ([]Entry, error) { return e, nil }

func TestGenerate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := &Generator{
		SiteURL: "https://cineflow.example.com",
		Source: entries{
			{Key: "CineFlow_VertexImagen/old.png", Updated: now.Add(-time.Hour)},
			{Key: "CineFlow_VertexImagen/old.html", Updated: now.Add(-time.Hour)},
			{Key: "CineFlow_VertexVeo/new.mp4", Size: 2048, Updated: now},
			{Key: "feed.xml", Updated: now},
		},
	}

	rss, err := g.Generate(context.Background())
	require.NoError(t, err)

	s := string(rss)
	assert.Equal(t, 2, strings.Count(s, "<item>"))
	assert.Contains(t, s, "🎬 Vertex AI Veo 3.1 (CineFlow)")
	assert.Contains(t, s, "https://cineflow.example.com/CineFlow_VertexVeo/new.html")
	assert.Contains(t, s, `url="https://cineflow.example.com/CineFlow_VertexVeo/new.mp4"`)
	assert.Contains(t, s, `type="image/png"`)
	assert.Equal(t, 2, strings.Count(s, "<enclosure"))
	assert.Contains(t, s, `length="2048"`)
	assert.Equal(t, 1, strings.Count(s, "old.html"))
	assert.Less(t, strings.Index(s, "new.mp4"), strings.Index(s, "old.png"))
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "CineFlow_ArkJimeng"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CineFlow_ArkJimeng", "a.png"), []byte("x"), 0o600))

	got, err := (&DirSource{Dir: dir}).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CineFlow_ArkJimeng/a.png", got[0].Key)
	assert.Equal(t, int64(1), got[0].Size)
	assert.False(t, got[0].Updated.IsZero())

	got, err = (&DirSource{Dir: filepath.Join(dir, "missing")}).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

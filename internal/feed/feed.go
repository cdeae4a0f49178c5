package feed

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/node"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
)

const Key = "feed.xml"

// Entry is one published artifact, keyed "<node class>/<id>.<ext>".
type Entry struct {
	Key     string
	Size    int64
	Updated time.Time
}

type Source interface {
	List(context.Context) ([]Entry, error)
}

// Generator renders the published artifacts as an RSS feed, newest first.
type Generator struct {
	Source  Source
	SiteURL string
}

func NewGenerator(i *do.Injector) (*Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	var source Source = &DirSource{Dir: cfg.OutputDir}
	if cfg.Bucket != "" {
		source = NewS3Source(i)
	}
	return &Generator{Source: source, SiteURL: cfg.SiteURL}, nil
}

var contentTypes = map[string]string{
	".png": "image/png",
	".mp4": "video/mp4",
}

func isArtifact(key string) bool {
	_, ok := contentTypes[path.Ext(key)]
	return ok && strings.Contains(key, "/")
}

func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("feed")
	log.Info("generating rss feed")

	entries, err := g.Source.List(ctx)
	if err != nil {
		return nil, err
	}

	feed := feeds.Feed{
		Title:       "CineFlow",
		Description: "Images and videos generated by CineFlow nodes",
		Link:        &feeds.Link{Href: g.SiteURL + "/"},
		Updated:     time.Now(),
	}
	for _, e := range lo.Filter(entries, func(e Entry, _ int) bool { return isArtifact(e.Key) }) {
		class := path.Dir(e.Key)
		title := class
		if d, ok := node.Lookup(class); ok {
			title = d.DisplayName
		}
		feed.Add(&feeds.Item{
			Id:      e.Key,
			Title:   title,
			Link:    &feeds.Link{Href: g.SiteURL + "/" + strings.TrimSuffix(e.Key, path.Ext(e.Key)) + ".html"},
			Updated: e.Updated,
			Enclosure: &feeds.Enclosure{
				Url:    g.SiteURL + "/" + e.Key,
				Length: strconv.FormatInt(e.Size, 10),
				Type:   contentTypes[path.Ext(e.Key)],
			},
		})
	}

	feed.Sort(func(a, b *feeds.Item) bool {
		return a.Updated.After(b.Updated)
	})
	log.Info("rendered feed", "items", len(feed.Items))

	rss, err := feed.ToRss()
	return []byte(rss), err
}

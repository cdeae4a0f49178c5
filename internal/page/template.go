package page

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"sync"

	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/samber/do"
)

//go:embed assets/artifact.html
var artifactTmpl string

// Params describe one published artifact. Src is relative to the page.
type Params struct {
	DisplayName string
	Kind        string // "image" or "video"
	Src         string
	Model       string
	Prompt      string
	Width       int
	Height      int
}

type Templator struct {
	tmpl *template.Template
	once sync.Once
}

func NewTemplator(*do.Injector) (*Templator, error) {
	return &Templator{}, nil
}

func (g *Templator) Template(ctx context.Context, params Params) ([]byte, error) {
	g.once.Do(func() {
		g.tmpl = template.Must(template.New("artifact").Parse(artifactTmpl))
	})

	log := log.FromContextOrDiscard(ctx).WithGroup("templator")
	log.Info("generating page", "kind", params.Kind, "src", params.Src)

	var data bytes.Buffer
	if err := g.tmpl.Execute(&data, params); err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}

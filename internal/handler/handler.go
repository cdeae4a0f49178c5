package handler

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/dmorgan81/cineflow/internal/feed"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/node"
	"github.com/dmorgan81/cineflow/internal/page"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/store"
	"github.com/dmorgan81/cineflow/internal/tensor"
	"github.com/google/uuid"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

type Input struct {
	Node   string      `json:"node"`
	Inputs node.Inputs `json:"inputs,omitempty"`
}

type Output struct {
	Node   string `json:"node"`
	Key    string `json:"key"`
	Page   string `json:"page"`
	Kind   string `json:"kind"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Handler struct {
	registry    *node.Registry
	uploader    store.Uploader
	invalidator store.Invalidator
	templator   *page.Templator
	feed        *feed.Generator
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		registry:    do.MustInvoke[*node.Registry](i),
		uploader:    do.MustInvoke[store.Uploader](i),
		invalidator: do.MustInvoke[store.Invalidator](i),
		templator:   do.MustInvoke[*page.Templator](i),
		feed:        do.MustInvoke[*feed.Generator](i),
	}, nil
}

// Handle runs one node and publishes its artifact next to a preview page.
func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("node", input.Node)
	log.Info("handling lambda invocation")

	art, err := h.registry.Run(ctx, input.Node, input.Inputs)
	if err != nil {
		return Output{}, err
	}
	if art.Video != nil {
		defer func() {
			if err := art.Video.Remove(); err != nil {
				log.Warn("leaving video behind", "error", err)
			}
		}()
	}

	def, _ := h.registry.Definition(input.Node)
	base := input.Node + "/" + uuid.NewString()
	out := Output{Node: input.Node, Page: base + ".html"}

	artifact, err := h.encode(art, base, &out)
	if err != nil {
		return Output{}, err
	}

	html, err := h.templator.Template(ctx, page.Params{
		DisplayName: def.DisplayName,
		Kind:        out.Kind,
		Src:         path.Base(out.Key),
		Model:       inputString(def, input.Inputs, "model"),
		Prompt:      inputString(def, input.Inputs, "prompt"),
		Width:       out.Width,
		Height:      out.Height,
	})
	if err != nil {
		return Output{}, err
	}

	metadata := map[string]string{"node": input.Node, "kind": out.Kind}
	artifact.Metadata = metadata
	uploads := []store.UploadParams{
		artifact,
		{
			Name:        out.Page,
			Data:        html,
			ContentType: "text/html",
			Metadata:    metadata,
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range uploads {
		u := u
		g.Go(func() error {
			return h.uploader.Upload(gctx, u)
		})
	}
	if err := g.Wait(); err != nil {
		return Output{}, err
	}

	// The feed lists what is already published, so it goes up last.
	rss, err := h.feed.Generate(ctx)
	if err != nil {
		return Output{}, err
	}
	if err := h.uploader.Upload(ctx, store.UploadParams{
		Name:        feed.Key,
		Data:        rss,
		ContentType: "application/rss+xml",
	}); err != nil {
		return Output{}, err
	}

	if err := h.invalidator.Invalidate(ctx, []string{"/" + out.Key, "/" + out.Page, "/" + feed.Key}); err != nil {
		return Output{}, err
	}

	log.Info("published artifact", "key", out.Key, "kind", out.Kind)
	return out, nil
}

func (h *Handler) encode(art provider.Artifact, base string, out *Output) (store.UploadParams, error) {
	if art.Video != nil {
		data, err := os.ReadFile(art.Video.Path)
		if err != nil {
			return store.UploadParams{}, fmt.Errorf("reading video: %w", err)
		}
		out.Kind, out.Key = "video", base+".mp4"
		return store.UploadParams{Name: out.Key, Data: data, ContentType: "video/mp4"}, nil
	}
	if art.Image == nil {
		return store.UploadParams{}, fmt.Errorf("%s produced no artifact", out.Node)
	}

	data, err := tensor.EncodePNG(art.Image)
	if err != nil {
		return store.UploadParams{}, err
	}
	out.Kind, out.Key = "image", base+".png"
	out.Width, out.Height = art.Image.Width, art.Image.Height
	return store.UploadParams{Name: out.Key, Data: data, ContentType: "image/png"}, nil
}

// inputString returns a string input as the node saw it, default included.
func inputString(def node.Definition, in node.Inputs, name string) string {
	if s, ok := in[name].(string); ok {
		return s
	}
	decl, ok := def.Input(name)
	if !ok {
		return ""
	}
	s, _ := decl.Default.(string)
	return s
}

package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/samber/do"
)

type Invalidator interface {
	Invalidate(context.Context, []string) error
}

// NewInvalidator returns a CloudFront invalidator when a distribution is
// configured. Without one, invalidation is a no-op.
func NewInvalidator(i *do.Injector) (Invalidator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.Distribution == "" {
		return NopInvalidator{}, nil
	}
	return &CloudFrontInvalidator{
		Client:       do.MustInvoke[*cloudfront.Client](i),
		Distribution: cfg.Distribution,
	}, nil
}

type NopInvalidator struct{}

func (NopInvalidator) Invalidate(ctx context.Context, paths []string) error {
	log.FromContextOrDiscard(ctx).Debug("no distribution configured, skipping invalidation", "paths", paths)
	return nil
}

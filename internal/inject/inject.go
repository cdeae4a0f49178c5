package inject

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/credentials"
	"github.com/dmorgan81/cineflow/internal/feed"
	"github.com/dmorgan81/cineflow/internal/handler"
	"github.com/dmorgan81/cineflow/internal/image"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/node"
	"github.com/dmorgan81/cineflow/internal/page"
	"github.com/dmorgan81/cineflow/internal/param"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/store"
	"github.com/dmorgan81/cineflow/internal/vertex"
	"github.com/dmorgan81/cineflow/internal/video"
	"github.com/samber/do"
)

func Setup(ctx context.Context) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)

	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.Provide[*config.Config](injector, func(i *do.Injector) (*config.Config, error) {
		return config.Load(ctx, &param.Lazy{Resolve: func() (param.Fetcher, error) {
			return do.Invoke[param.Fetcher](i)
		}})
	})
	do.ProvideValue[credentials.TokenSource](injector, credentials.Google{})
	do.Provide[*vertex.Client](injector, vertex.NewClient)

	do.ProvideNamed[provider.Generator](injector, node.Gemini, image.NewGeminiGenerator)
	do.ProvideNamed[provider.Generator](injector, node.Imagen, image.NewImagenGenerator)
	do.ProvideNamed[provider.Generator](injector, node.Veo, video.NewVeoGenerator)
	do.ProvideNamed[provider.Generator](injector, node.Jimeng, image.NewJimengGenerator)
	do.Provide[*node.Registry](injector, node.NewRegistry)

	do.Provide[store.Uploader](injector, store.NewUploader)
	do.Provide[store.Invalidator](injector, store.NewInvalidator)
	do.Provide[*page.Templator](injector, page.NewTemplator)
	do.Provide[*feed.Generator](injector, feed.NewGenerator)

	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}

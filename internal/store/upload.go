package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/samber/do"
)

type UploadParams struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

// NewUploader publishes to S3 when a bucket is configured and to the local
// output directory otherwise.
func NewUploader(i *do.Injector) (Uploader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.Bucket == "" {
		return &FileUploader{Dir: cfg.OutputDir}, nil
	}
	return &S3Uploader{
		Client: do.MustInvoke[*s3.Client](i),
		Bucket: cfg.Bucket,
	}, nil
}

type FileUploader struct {
	Dir string
}

func (u *FileUploader) Upload(ctx context.Context, params UploadParams) error {
	path := filepath.Join(u.Dir, filepath.FromSlash(params.Name))
	log := log.FromContextOrDiscard(ctx).WithGroup("file")
	log.Info("writing", "file", path, "content-type", params.ContentType)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, params.Data, 0o600)
}

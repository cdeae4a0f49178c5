package feed

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/samber/do"
)

type S3Source struct {
	Client *s3.Client
	Bucket string
}

func NewS3Source(i *do.Injector) *S3Source {
	return &S3Source{
		Client: do.MustInvoke[*s3.Client](i),
		Bucket: do.MustInvoke[*config.Config](i).Bucket,
	}
}

func (s *S3Source) List(ctx context.Context) ([]Entry, error) {
	pager := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
	})

	var entries []Entry
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			entries = append(entries, Entry{
				Key:     aws.ToString(obj.Key),
				Size:    aws.ToInt64(obj.Size),
				Updated: aws.ToTime(obj.LastModified),
			})
		}
	}
	return entries, nil
}

// DirSource lists artifacts written by store.FileUploader.
type DirSource struct {
	Dir string
}

func (s *DirSource) List(context.Context) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(s.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.Dir, p)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Key: filepath.ToSlash(rel), Size: info.Size(), Updated: info.ModTime()})
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return entries, err
}

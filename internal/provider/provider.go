package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/dmorgan81/cineflow/internal/tensor"
)

// Request carries one node invocation. Credential fields are explicit
// overrides; empty values fall back to the process configuration.
type Request struct {
	Prompt         string
	NegativePrompt string
	Model          string
	Size           string
	AspectRatio    string
	Duration       int
	Temperature    float64
	ReferenceImage *tensor.Image

	ProjectID  string
	Location   string
	APIKey     string
	EndpointID string
}

// VideoFile is a video written to the local filesystem. The caller that
// receives it owns the file and is responsible for removing it.
type VideoFile struct {
	Path string
}

func (v *VideoFile) Remove() error {
	if err := os.Remove(v.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", v.Path, err)
	}
	return nil
}

// Artifact holds exactly one of Image or Video.
type Artifact struct {
	Image *tensor.Image
	Video *VideoFile
}

type Generator interface {
	Generate(context.Context, Request) (Artifact, error)
}

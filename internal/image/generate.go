package image

import (
	"fmt"
	"log/slog"

	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/dmorgan81/cineflow/internal/tensor"
)

// artifact normalizes image bytes returned by a provider into the host tensor.
func artifact(log *slog.Logger, name string, data []byte) (provider.Artifact, error) {
	img, err := tensor.FromBytes(data)
	if err != nil {
		return provider.Artifact{}, fmt.Errorf("%s image: %w", name, err)
	}
	log.Info("received image", "height", img.Height, "width", img.Width)
	return provider.Artifact{Image: img}, nil
}

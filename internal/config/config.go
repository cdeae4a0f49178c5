package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/param"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

const (
	DefaultLocation      = "us-central1"
	DefaultArkEndpointID = "doubao-seedream-3-0-t2i-250415"
	DefaultOutputDir     = "output"
)

// Config is the process-wide fallback for node credentials and the
// publishing settings. It is loaded once and passed explicitly.
type Config struct {
	// Providers
	GoogleCloudProject string
	ArkAPIKey          string
	ArkEndpointID      string

	// Artifacts
	VideoDir     string // empty: os.TempDir()
	Bucket       string // empty: write to OutputDir
	OutputDir    string
	Distribution string
	SiteURL      string // prefix for feed links; empty: site-relative
}

type Vertex struct {
	Project  string
	Location string
}

type Ark struct {
	APIKey     string
	EndpointID string
}

// Load reads the environment, seeded from a .env file when one exists.
// Secrets may be referenced indirectly through a <KEY>_PARAM variable naming
// a parameter that secrets resolves.
func Load(ctx context.Context, secrets param.Fetcher) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.FromContextOrDiscard(ctx).Info("loaded .env")
	}

	cfg := &Config{
		GoogleCloudProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		ArkAPIKey:          os.Getenv("ARK_API_KEY"),
		ArkEndpointID:      getEnv("ARK_ENDPOINT_ID", DefaultArkEndpointID),
		VideoDir:           os.Getenv("VIDEO_DIR"),
		Bucket:             os.Getenv("BUCKET"),
		OutputDir:          getEnv("OUTPUT_DIR", DefaultOutputDir),
		Distribution:       os.Getenv("DISTRIBUTION"),
		SiteURL:            strings.TrimSuffix(os.Getenv("SITE_URL"), "/"),
	}

	if cfg.ArkAPIKey == "" {
		if path := os.Getenv("ARK_API_KEY_PARAM"); path != "" {
			if secrets == nil {
				return nil, fmt.Errorf("ARK_API_KEY_PARAM is set but no parameter store is available")
			}
			key, err := secrets.Fetch(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("fetching ARK_API_KEY_PARAM: %w", err)
			}
			cfg.ArkAPIKey = key
		}
	}

	return cfg, nil
}

// Vertex resolves the Vertex AI project and location for one call.
// Explicit values win over the configuration.
func (c *Config) Vertex(project, location string) (Vertex, error) {
	project = lo.Ternary(project != "", project, c.GoogleCloudProject)
	if project == "" {
		return Vertex{}, &provider.ConfigurationError{Key: "GOOGLE_CLOUD_PROJECT"}
	}
	return Vertex{
		Project:  project,
		Location: lo.Ternary(location != "", location, DefaultLocation),
	}, nil
}

// Ark resolves the Ark API key and endpoint id for one call.
func (c *Config) Ark(apiKey, endpointID string) (Ark, error) {
	apiKey = lo.Ternary(apiKey != "", apiKey, c.ArkAPIKey)
	if apiKey == "" {
		return Ark{}, &provider.ConfigurationError{Key: "ARK_API_KEY"}
	}
	endpointID = lo.Ternary(endpointID != "", endpointID, c.ArkEndpointID)
	return Ark{
		APIKey:     apiKey,
		EndpointID: lo.Ternary(endpointID != "", endpointID, DefaultArkEndpointID),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

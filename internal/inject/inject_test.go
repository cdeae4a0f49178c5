package inject

import (
	"context"
	"testing"

	"github.com/dmorgan81/cineflow/internal/config"
	"github.com/dmorgan81/cineflow/internal/handler"
	"github.com/dmorgan81/cineflow/internal/node"
	"github.com/dmorgan81/cineflow/internal/store"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_LocalWithoutAWS(t *testing.T) {
	for _, k := range []string{"ARK_API_KEY", "ARK_API_KEY_PARAM", "BUCKET", "DISTRIBUTION"} {
		t.Setenv(k, "")
	}
	t.Setenv("GOOGLE_CLOUD_PROJECT", "proj")
	t.Setenv("OUTPUT_DIR", t.TempDir())

	injector := Setup(context.Background())

	_, err := do.Invoke[*handler.Handler](injector)
	require.NoError(t, err)

	registry := do.MustInvoke[*node.Registry](injector)
	assert.Len(t, registry.Definitions(), 4)

	assert.IsType(t, &store.FileUploader{}, do.MustInvoke[store.Uploader](injector))
	assert.Equal(t, store.NopInvalidator{}, do.MustInvoke[store.Invalidator](injector))
	assert.Equal(t, "proj", do.MustInvoke[*config.Config](injector).GoogleCloudProject)
}

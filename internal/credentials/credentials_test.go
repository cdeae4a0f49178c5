package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	var src TokenSource = Static("tok")
	got, err := src.Token(context.Background(), "https://www.googleapis.com/auth/cloud-platform")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}

func TestGoogle_NoCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/nonexistent/credentials.json")

	_, err := Google{}.Token(context.Background(), "https://www.googleapis.com/auth/cloud-platform")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finding google credentials")
}

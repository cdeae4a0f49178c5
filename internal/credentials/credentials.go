package credentials

import (
	"context"
	"fmt"

	"github.com/dmorgan81/cineflow/internal/log"
	"golang.org/x/oauth2/google"
)

type TokenSource interface {
	Token(ctx context.Context, scope string) (string, error)
}

// Google resolves Application Default Credentials on every call, so each
// token it returns is freshly refreshed.
type Google struct{}

func (Google) Token(ctx context.Context, scope string) (string, error) {
	log.FromContextOrDiscard(ctx).Debug("refreshing google credentials", "scope", scope)

	creds, err := google.FindDefaultCredentials(ctx, scope)
	if err != nil {
		return "", fmt.Errorf("finding google credentials: %w", err)
	}
	tok, err := creds.TokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("refreshing google credentials: %w", err)
	}
	return tok.AccessToken, nil
}

type Static string

func (s Static) Token(context.Context, string) (string, error) {
	return string(s), nil
}

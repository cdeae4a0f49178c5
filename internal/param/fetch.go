package param

import "context"

// Fetcher resolves a secret stored outside the process environment.
type Fetcher interface {
	Fetch(context.Context, string) (string, error)
}

// Map is a Fetcher backed by a fixed set of values.
type Map map[string]string

func (m Map) Fetch(_ context.Context, path string) (string, error) {
	v, ok := m[path]
	if !ok {
		return "", &NotFoundError{Path: path}
	}
	return v, nil
}

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "parameter " + e.Path + " not found"
}

// Lazy defers building the real Fetcher until a secret is actually needed,
// so processes that never reference a parameter never touch AWS.
type Lazy struct {
	Resolve func() (Fetcher, error)
}

func (l *Lazy) Fetch(ctx context.Context, path string) (string, error) {
	f, err := l.Resolve()
	if err != nil {
		return "", err
	}
	return f.Fetch(ctx, path)
}

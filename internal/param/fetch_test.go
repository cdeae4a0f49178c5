package param

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := Map{"/cineflow/ark": "secret"}

	v, err := m.Fetch(context.Background(), "/cineflow/ark")
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	_, err = m.Fetch(context.Background(), "/missing")
	assert.EqualError(t, err, "parameter /missing not found")
}

func TestLazy(t *testing.T) {
	calls := 0
	l := &Lazy{Resolve: func() (Fetcher, error) {
		calls++
		return Map{"a": "b"}, nil
	}}
	assert.Zero(t, calls)

	v, err := l.Fetch(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, calls)

	boom := errors.New("no aws credentials")
	_, err = (&Lazy{Resolve: func() (Fetcher, error) { return nil, boom }}).Fetch(context.Background(), "a")
	assert.ErrorIs(t, err, boom)
}

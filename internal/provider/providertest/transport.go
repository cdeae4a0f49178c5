// Package providertest serves provider requests from an in-process handler
// and records them, so adapters can be tested against their real endpoint
// URLs without network access.
package providertest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

type Call struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type Transport struct {
	Handler http.Handler

	mu    sync.Mutex
	calls []Call
}

func NewClient(handler http.HandlerFunc) (*http.Client, *Transport) {
	t := &Transport{Handler: handler}
	return &http.Client{Transport: t}, t
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		if body, err = io.ReadAll(req.Body); err != nil {
			return nil, err
		}
		req.Body.Close()
	}

	t.mu.Lock()
	t.calls = append(t.calls, Call{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
	})
	t.mu.Unlock()

	in := req.Clone(req.Context())
	in.Body = io.NopCloser(bytes.NewReader(body))
	rec := httptest.NewRecorder()
	t.Handler.ServeHTTP(rec, in)

	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// Tokens is a credentials.TokenSource that hands out a fixed token and
// counts how often it was asked.
type Tokens struct {
	Value string
	Err   error

	mu     sync.Mutex
	scopes []string
}

func (s *Tokens) Token(_ context.Context, scope string) (string, error) {
	s.mu.Lock()
	s.scopes = append(s.scopes, scope)
	s.mu.Unlock()
	return s.Value, s.Err
}

func (s *Tokens) Scopes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scopes...)
}

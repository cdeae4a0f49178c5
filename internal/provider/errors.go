package provider

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration     = errors.New("configuration error")
	ErrUpstream          = errors.New("upstream error")
	ErrEmptyResponse     = errors.New("empty response")
	ErrUnsupportedFormat = errors.New("unsupported response format")
)

// ConfigurationError is returned before any network call when a required
// credential or identifier is neither passed explicitly nor configured.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return e.Key + " not configured"
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// UpstreamError carries a non-success HTTP status and the response body verbatim.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

type EmptyResponseError struct {
	Provider string
	Artifact string // "image" or "video"
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("No %s in %s response", e.Artifact, e.Provider)
}

func (e *EmptyResponseError) Is(target error) bool { return target == ErrEmptyResponse }

type UnsupportedFormatError struct {
	Provider string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unknown %s response format", e.Provider)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

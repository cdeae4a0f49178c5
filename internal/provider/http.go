package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// VertexEndpoint builds the publisher model URL for a Vertex AI verb such as
// "generateContent" or "predict".
func VertexEndpoint(location, project, model, verb string) string {
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:%s",
		location, project, location, model, verb)
}

// PostJSON sends body as JSON with a bearer token and returns the raw
// response body. A status of 400 or above becomes an *UpstreamError named
// after the provider.
func PostJSON(ctx context.Context, client *http.Client, name, url, token string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	return send(client, name, req)
}

// Fetch downloads a remote artifact.
func Fetch(ctx context.Context, client *http.Client, name, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return send(client, name, req)
}

func send(client *http.Client, name string, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", name, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &UpstreamError{Provider: name, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

func DecodeBase64(name, s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", name, err)
	}
	return data, nil
}

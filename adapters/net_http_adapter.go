package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
)

// NetHTTPAdapter is the standard HTTP adapter implementation using the
// net/http package. It keeps a cookie jar so collector-set cookies ride
// along on subsequent requests, matching a browser fetch with credentials.
type NetHTTPAdapter struct {
	client *http.Client
}

// Ensure NetHTTPAdapter implements HTTPAdapter interface
var _ HTTPAdapter = (*NetHTTPAdapter)(nil)

// NewNetHTTPAdapter creates a new NetHTTPAdapter instance.
func NewNetHTTPAdapter() HTTPAdapter {
	jar, _ := cookiejar.New(nil)
	return &NetHTTPAdapter{
		client: &http.Client{Jar: jar},
	}
}

// Post sends a JSON body to the specified URL with the given headers.
func (h *NetHTTPAdapter) Post(url string, body any, headers map[string]string) (*HTTPResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return h.do(req)
}

// Get performs a GET request against the specified URL.
func (h *NetHTTPAdapter) Get(url string) (*HTTPResponse, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return h.do(req)
}

func (h *NetHTTPAdapter) do(req *http.Request) (*HTTPResponse, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &HTTPResponse{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:   data,
	}, nil
}

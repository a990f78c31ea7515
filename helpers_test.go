package pill

import (
	"encoding/json"
	"sync"

	"github.com/zzazz/pill-go/adapters"
)

// recordedRequest is one call seen by fakeHTTP, with the JSON body decoded.
type recordedRequest struct {
	Method  string
	URL     string
	Body    map[string]any
	Headers map[string]string
}

// fakeHTTP is a scripted HTTPAdapter. respond decides the reply per request;
// when nil every request succeeds with an empty JSON object.
type fakeHTTP struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  func(req recordedRequest) (*HTTPResponse, error)
}

var _ HTTPAdapter = (*fakeHTTP)(nil)

func (f *fakeHTTP) Post(url string, body any, headers map[string]string) (*HTTPResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	json.Unmarshal(data, &decoded)

	req := recordedRequest{Method: "POST", URL: url, Body: decoded, Headers: headers}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{}`)}, nil
	}
	return respond(req)
}

func (f *fakeHTTP) Get(url string) (*HTTPResponse, error) {
	req := recordedRequest{Method: "GET", URL: url}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{}`)}, nil
	}
	return respond(req)
}

func (f *fakeHTTP) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// sentTypes returns the envelope "type" field of every recorded POST.
func (f *fakeHTTP) sentTypes() []string {
	var types []string
	for _, req := range f.recorded() {
		if req.Method != "POST" {
			continue
		}
		if t, ok := req.Body["type"].(string); ok {
			types = append(types, t)
		}
	}
	return types
}

// memStore is an in-memory StorageAdapter.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ StorageAdapter = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{}
	return nil
}

func testLogger() LoggerAdapter {
	return adapters.NewNoOpLoggerAdapter()
}

// newTestSession builds an unready session with no persistence.
func newTestSession(onReady func()) *Session {
	return NewSession(newMemStore(), testLogger(), onReady)
}

func floatPtr(f float64) *float64 { return &f }

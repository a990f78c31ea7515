package adapters

// HTTPResponse represents the response from an HTTP request.
type HTTPResponse struct {
	OK     bool
	Status int
	Body   []byte
}

// HTTPAdapter is an interface for HTTP communication.
// Implement this interface to use custom HTTP clients.
type HTTPAdapter interface {
	// Post sends a JSON body to the specified URL.
	//
	// Parameters:
	//   - url: The endpoint URL
	//   - body: Value marshaled to JSON as the request body
	//   - headers: Optional custom headers to merge with defaults
	//
	// Returns HTTP response or error.
	Post(url string, body any, headers map[string]string) (*HTTPResponse, error)

	// Get performs a GET request against the specified URL.
	Get(url string) (*HTTPResponse, error)
}

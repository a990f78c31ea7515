package adapters

// NoOpStorageAdapter is a storage adapter that performs no operations.
// Useful when session persistence is not required; the session then lives
// only as long as the widget instance.
type NoOpStorageAdapter struct{}

// NewNoOpStorageAdapter creates a new NoOpStorageAdapter instance.
func NewNoOpStorageAdapter() *NoOpStorageAdapter {
	return &NoOpStorageAdapter{}
}

// Get always reports the key as absent.
func (n *NoOpStorageAdapter) Get(key string) (string, error) {
	return "", nil
}

// Set does nothing and always returns nil.
func (n *NoOpStorageAdapter) Set(key string, value string) error {
	return nil
}

// Clear does nothing and always returns nil.
func (n *NoOpStorageAdapter) Clear() error {
	return nil
}

package adapters

// Storage keys used for session persistence. Fixed names shared with the
// browser variants of the widget, which keep them in localStorage.
const (
	StorageKeyUserID  = "user_id"
	StorageKeyEventID = "event_id"
)

// StorageAdapter is an interface for persisting session identifiers across
// widget instances. Implement this interface to use custom storage backends
// (database, file, cookie bridge, etc.).
type StorageAdapter interface {
	// Get retrieves the value stored under key.
	// Returns "" with a nil error when the key is absent.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value string) error

	// Clear removes all stored values.
	Clear() error
}

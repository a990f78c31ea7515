package adapters

// Event is a tracked event waiting in (or drained from) the queue.
// Payload fields are spread into the wire envelope at send time.
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// SessionGrant carries the server-assigned identifiers returned by the
// collector in response to a pageview event.
type SessionGrant struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}

// Dimensions describes a width/height pair in CSS pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TrendDirection is the state of the price trend indicator.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendNone TrendDirection = "none"
)

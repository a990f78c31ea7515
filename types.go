package pill

import (
	"time"

	"github.com/zzazz/pill-go/adapters"
)

// Re-export adapter types for convenience
type (
	Event          = adapters.Event
	SessionGrant   = adapters.SessionGrant
	Dimensions     = adapters.Dimensions
	TrendDirection = adapters.TrendDirection
	HTTPAdapter    = adapters.HTTPAdapter
	HTTPResponse   = adapters.HTTPResponse
	PageAdapter    = adapters.PageAdapter
	StorageAdapter = adapters.StorageAdapter
	LoggerAdapter  = adapters.LoggerAdapter
	LogLevel       = adapters.LogLevel
)

const (
	TrendUp   = adapters.TrendUp
	TrendDown = adapters.TrendDown
	TrendNone = adapters.TrendNone
)

// Keys the session identifiers are persisted under.
const (
	StorageKeyUserID  = adapters.StorageKeyUserID
	StorageKeyEventID = adapters.StorageKeyEventID
)

// Event types emitted by the widget.
const (
	EventPageview = "pageview"
	EventPoll     = "poll"
	EventPrice    = "price"
	EventScroll   = "scroll"
	EventClick    = "click"
)

// Default timing constants. The heartbeat values are part of the collector
// contract: 5 s polls for the first 10 minutes of a visit, 60 s after.
const (
	DefaultHeartbeatInterval = 5 * time.Second
	SlowHeartbeatInterval    = 60 * time.Second
	SlowHeartbeatAfter       = 10 * time.Minute

	DefaultPricePollInterval = 3 * time.Second
	DefaultDebounceDelay     = 500 * time.Millisecond

	DefaultCurrency = "inr"
)

type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return "HTTP request failed"
}

// ClientConfig configures a widget Client.
type ClientConfig struct {
	// Endpoint is the collector URL events are posted to.
	Endpoint string
	// PriceEndpoint is the quote service URL.
	PriceEndpoint string
	// RulesEndpoint is the base URL of the remote enable rules
	// ({RulesEndpoint}/{trackingID}.json).
	RulesEndpoint string
	// Currency requested from the quote service. Defaults to "inr".
	Currency string

	// PricePollInterval is the delay between quote fetches. Defaults to 3s.
	PricePollInterval time.Duration
	// DebounceDelay is the trailing-edge window for scroll/click events.
	// Defaults to 500ms.
	DebounceDelay time.Duration

	Adapters struct {
		HTTPAdapter    HTTPAdapter
		PageAdapter    PageAdapter
		StorageAdapter StorageAdapter
		LoggerAdapter  LoggerAdapter
	}
}

package pill

import (
	"errors"
	"sync"

	"github.com/zzazz/pill-go/adapters"
)

// Client is the widget controller. It owns the session, the event pipeline,
// the heartbeat chain, the price poller and the pill state machine, and is
// the only type a host needs to drive.
//
// Lifecycle: NewClient -> Init -> (OnScroll/OnClick/TrackPage)* -> Dispose.
type Client struct {
	config ClientConfig

	httpAdapter    HTTPAdapter
	pageAdapter    PageAdapter
	storageAdapter StorageAdapter
	loggerAdapter  LoggerAdapter

	session   *Session
	state     *VisitState
	transport *Transport
	pipeline  *Pipeline
	heartbeat *Heartbeat
	poller    *Poller
	widget    *Widget
	listeners *Listeners
	rules     *Rules

	stop chan struct{}

	mu          sync.Mutex
	initialized bool
	disabled    bool
	disposed    bool
}

// NewClient validates the config, applies defaults and assembles the
// component graph. Nothing touches the network until Init.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Endpoint == "" {
		return nil, errors.New("Endpoint is required")
	}
	if config.PriceEndpoint == "" {
		return nil, errors.New("PriceEndpoint is required")
	}
	if config.RulesEndpoint == "" {
		return nil, errors.New("RulesEndpoint is required")
	}
	if config.Adapters.PageAdapter == nil {
		return nil, errors.New("PageAdapter is required")
	}

	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}
	if config.PricePollInterval <= 0 {
		config.PricePollInterval = DefaultPricePollInterval
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = DefaultDebounceDelay
	}

	c := &Client{
		config:      config,
		pageAdapter: config.Adapters.PageAdapter,
		stop:        make(chan struct{}),
	}

	// Use provided adapters or defaults
	if config.Adapters.HTTPAdapter != nil {
		c.httpAdapter = config.Adapters.HTTPAdapter
	} else {
		c.httpAdapter = adapters.NewNetHTTPAdapter()
	}
	if config.Adapters.StorageAdapter != nil {
		c.storageAdapter = config.Adapters.StorageAdapter
	} else {
		c.storageAdapter = adapters.NewNoOpStorageAdapter()
	}
	if config.Adapters.LoggerAdapter != nil {
		c.loggerAdapter = config.Adapters.LoggerAdapter
	} else {
		c.loggerAdapter = adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn)
	}

	c.state = NewVisitState()
	c.session = NewSession(c.storageAdapter, c.loggerAdapter, func() {
		if c.pipeline != nil {
			c.pipeline.Flush()
		}
	})
	c.transport = NewTransport(config.Endpoint, c.pageAdapter.TrackingID(), c.httpAdapter, c.session, c.loggerAdapter)
	c.pipeline = NewPipeline(c.transport, c.session, c.loggerAdapter)
	c.heartbeat = NewHeartbeat(c.transport, c.session, c.state, c.pageAdapter, c.loggerAdapter, c.stop)
	c.widget = NewWidget(c.pageAdapter)
	c.poller = NewPoller(config.PriceEndpoint, config.Currency, config.PricePollInterval,
		c.httpAdapter, c.pageAdapter, c.widget, c.transport, c.pipeline, c.session, c.state, c.loggerAdapter)
	c.listeners = NewListeners(c.pipeline, c.pageAdapter, config.DebounceDelay, c.stop)
	c.rules = NewRules(config.RulesEndpoint, c.httpAdapter, c.loggerAdapter)

	return c, nil
}

// Init bootstraps the widget: restores any persisted session, checks the
// remote enable rules (fail-closed), then starts the pageview/heartbeat
// chain for the current page and the price poller. Safe to call twice;
// a disposed client stays disposed.
func (c *Client) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || c.disposed {
		return nil
	}

	c.session.Restore()

	if !c.rules.Enabled(c.pageAdapter.TrackingID()) {
		c.loggerAdapter.Warn("Price pill disabled remotely")
		c.pageAdapter.SetVisible(false)
		c.disabled = true
		c.initialized = true
		return nil
	}
	c.loggerAdapter.Info("Price pill enabled by remote rules")

	c.heartbeat.Start(c.pageAdapter.PageURL())
	go c.poller.Run(c.stop)

	c.initialized = true
	return nil
}

// Disabled reports whether the remote rules suppressed the widget.
func (c *Client) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// TrackPage switches tracking to url: the running heartbeat chain dies at
// its next iteration and a fresh pageview/heartbeat chain begins. The price
// event re-arms for the new visit.
func (c *Client) TrackPage(url string) {
	if !c.running() {
		return
	}
	c.heartbeat.Start(url)
}

// OnScroll feeds a scroll notification into the debounced pipeline.
func (c *Client) OnScroll() {
	if !c.running() {
		return
	}
	c.listeners.OnScroll()
}

// OnClick feeds a click notification into the debounced pipeline.
func (c *Client) OnClick(click Click) {
	if !c.running() {
		return
	}
	c.listeners.OnClick(click)
}

// Flush attempts to drain the buffered event queue. No-op until the session
// is ready.
func (c *Client) Flush() {
	c.pipeline.Flush()
}

// QueuedEvents returns how many events are waiting for the session.
func (c *Client) QueuedEvents() int {
	return c.pipeline.Len()
}

// Dispose stops the poller and every heartbeat chain, terminally: a
// disposed client cannot be re-initialized. Buffered events that never got
// a session are discarded; delivery is best-effort by contract.
func (c *Client) Dispose() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil
	}
	c.disposed = true

	if !c.initialized {
		return nil
	}

	c.loggerAdapter.Info("Disposing widget client")
	close(c.stop)
	c.pipeline.Discard()
	return nil
}

func (c *Client) running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized && !c.disabled && !c.disposed
}

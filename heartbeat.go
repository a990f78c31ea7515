package pill

import (
	"time"
)

// Heartbeat owns the pageview/poll chain for the active visit. Start spawns
// a new chain; the previous one is not cancelled but dies at its next
// iteration when its generation token no longer matches the visit state.
type Heartbeat struct {
	transport *Transport
	session   *Session
	state     *VisitState
	page      PageAdapter
	logger    LoggerAdapter

	now  func() time.Time
	stop chan struct{}

	// interval override for tests; nil means HeartbeatInterval
	intervalFn func(now, visitTime time.Time) time.Duration
}

// NewHeartbeat creates a Heartbeat. stop is shared with the owning client;
// closing it retires every chain.
func NewHeartbeat(transport *Transport, session *Session, state *VisitState, page PageAdapter, logger LoggerAdapter, stop chan struct{}) *Heartbeat {
	return &Heartbeat{
		transport: transport,
		session:   session,
		state:     state,
		page:      page,
		logger:    logger,
		now:       time.Now,
		stop:      stop,
	}
}

// Start begins tracking url: retires the previous chain, resets the priced
// flag, records the visit time, sends a pageview and starts heartbeating.
// The pageview send and the chain run on their own goroutine.
func (h *Heartbeat) Start(url string) {
	generation := h.state.BeginVisit(url, h.now())
	go h.run(url, generation)
}

func (h *Heartbeat) run(url string, generation uint64) {
	result := h.transport.Send(EventPageview, h.pageviewPayload(url))
	if result.OK && result.Grant != nil {
		h.session.Bind(*result.Grant)
	}

	for {
		if !h.state.Current(url, generation) {
			h.logger.Debug("Heartbeat chain for %s retired", url)
			return
		}

		// Best-effort: a failed poll never stops the chain.
		metricHeartbeats.Inc()
		h.transport.Send(EventPoll, nil)

		wait := h.interval()
		select {
		case <-time.After(wait):
		case <-h.stop:
			return
		}
	}
}

func (h *Heartbeat) interval() time.Duration {
	if h.intervalFn != nil {
		return h.intervalFn(h.now(), h.state.VisitTime())
	}
	return HeartbeatInterval(h.now(), h.state.VisitTime())
}

func (h *Heartbeat) pageviewPayload(url string) map[string]any {
	return map[string]any{
		"browser":  h.page.BrowserSize(),
		"device":   h.page.ScreenSize(),
		"url":      url,
		"referrer": h.page.Referrer(),
	}
}

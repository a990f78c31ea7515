package pill

import (
	"encoding/json"
	"time"
)

// quoteRequest is the body posted to the quote service.
type quoteRequest struct {
	URLs     []string `json:"urls"`
	Currency string   `json:"currency"`
}

// QuoteEntry is one URL's quote in the service response. Older backends
// return "price", newer ones "qap"; either counts as the numeric price.
type QuoteEntry struct {
	Price    *float64        `json:"price"`
	QAP      *float64        `json:"qap"`
	Currency string          `json:"currency"`
	Insights json.RawMessage `json:"insights,omitempty"`
}

// Value returns the entry's numeric price, preferring "price" over "qap".
func (q *QuoteEntry) Value() (float64, bool) {
	if q.Price != nil {
		return *q.Price, true
	}
	if q.QAP != nil {
		return *q.QAP, true
	}
	return 0, false
}

// Poller periodically fetches the quote for the page's target URL, drives
// the widget state machine and emits the one-time price event per visit.
type Poller struct {
	endpoint string
	currency string
	interval time.Duration

	http      HTTPAdapter
	page      PageAdapter
	widget    *Widget
	transport *Transport
	pipeline  *Pipeline
	session   *Session
	state     *VisitState
	logger    LoggerAdapter
}

// NewPoller creates a Poller; it does nothing until Run is called.
func NewPoller(endpoint, currency string, interval time.Duration, http HTTPAdapter, page PageAdapter, widget *Widget, transport *Transport, pipeline *Pipeline, session *Session, state *VisitState, logger LoggerAdapter) *Poller {
	return &Poller{
		endpoint:  endpoint,
		currency:  currency,
		interval:  interval,
		http:      http,
		page:      page,
		widget:    widget,
		transport: transport,
		pipeline:  pipeline,
		session:   session,
		state:     state,
		logger:    logger,
	}
}

// Run ticks immediately, then on every interval until stop closes.
func (p *Poller) Run(stop chan struct{}) {
	p.Tick()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Tick()
		case <-stop:
			return
		}
	}
}

// Tick performs one poll cycle. Every failure path degrades to "try again
// next tick"; nothing propagates.
func (p *Poller) Tick() {
	url := p.page.TargetURL()
	if url == "" {
		return
	}

	generation := p.state.Generation()
	entry, ok := p.fetchQuote(url)
	if p.state.Generation() != generation {
		// navigation happened while the fetch was in flight; this
		// tick's outcome belongs to the old visit
		return
	}
	if !ok {
		// No quote available: hide and re-arm the price event (a later
		// streak emits a fresh one).
		p.widget.Hide()
		p.state.ResetPriced()
		return
	}

	price, ok := entry.Value()
	if !ok {
		metricPriceFetches.WithLabelValues("missing").Inc()
		p.widget.Hide()
		p.state.ResetPriced()
		return
	}

	metricPriceFetches.WithLabelValues("ok").Inc()
	p.emitPriceEvent(url, price, generation)
	p.widget.Observe(price)
}

func (p *Poller) fetchQuote(url string) (*QuoteEntry, bool) {
	resp, err := p.http.Post(p.endpoint, quoteRequest{URLs: []string{url}, Currency: p.currency}, nil)
	if err != nil {
		p.logger.Error("Price fetch failed: %v", err)
		metricPriceFetches.WithLabelValues("error").Inc()
		return nil, false
	}
	if !resp.OK {
		p.logger.Warn("Price service returned status %d", resp.Status)
		metricPriceFetches.WithLabelValues("error").Inc()
		return nil, false
	}

	var quotes map[string]QuoteEntry
	if err := json.Unmarshal(resp.Body, &quotes); err != nil {
		p.logger.Warn("Malformed price response: %v", err)
		metricPriceFetches.WithLabelValues("error").Inc()
		return nil, false
	}

	entry, found := quotes[url]
	if !found {
		metricPriceFetches.WithLabelValues("missing").Inc()
		return nil, false
	}
	return &entry, true
}

// emitPriceEvent sends the visit's one-time price event. When the session
// is not ready the event is queued and the priced flag set immediately.
// Queueing is assumed reliable; a direct send is not, so on failure the
// flag resets and the next tick retries. The mark is conditional on the
// tick's generation, keeping a stale tick from claiming the new visit's
// price event.
func (p *Poller) emitPriceEvent(url string, price float64, generation uint64) {
	if p.state.IsPriced() {
		return
	}

	payload := map[string]any{
		"url":      url,
		"price":    price,
		"currency": p.currency,
	}

	if !p.session.Ready() {
		if p.state.MarkPricedIf(generation) {
			p.pipeline.Enqueue(EventPrice, payload)
		}
		return
	}

	if !p.state.MarkPricedIf(generation) {
		return
	}
	result := p.transport.Send(EventPrice, payload)
	if !result.OK {
		p.state.ResetPriced()
	}
}

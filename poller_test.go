package pill

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzazz/pill-go/adapters"
)

type pollerFixture struct {
	poller   *Poller
	http     *fakeHTTP
	page     *adapters.MemoryPageAdapter
	widget   *Widget
	session  *Session
	state    *VisitState
	pipeline *Pipeline
}

func newPollerFixture(t *testing.T) *pollerFixture {
	t.Helper()
	http := &fakeHTTP{}
	page := adapters.NewMemoryPageAdapter()
	page.TrackingIDValue = "t-123"
	page.SetTargetURL("https://a/")

	session := newTestSession(nil)
	state := NewVisitState()
	state.BeginVisit("https://a/", time.Now())
	transport := NewTransport("https://collector/event", "t-123", http, session, testLogger())
	pipeline := NewPipeline(transport, session, testLogger())
	widget := NewWidget(page)
	poller := NewPoller("https://quote/v3/price", "inr", DefaultPricePollInterval,
		http, page, widget, transport, pipeline, session, state, testLogger())

	return &pollerFixture{poller: poller, http: http, page: page, widget: widget, session: session, state: state, pipeline: pipeline}
}

// quoteResponder answers the quote endpoint and succeeds on everything else.
func quoteResponder(body string) func(recordedRequest) (*HTTPResponse, error) {
	return func(req recordedRequest) (*HTTPResponse, error) {
		if req.URL == "https://quote/v3/price" {
			return &HTTPResponse{OK: true, Status: 200, Body: []byte(body)}, nil
		}
		return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{}`)}, nil
	}
}

func TestPoller_ValidQuoteShowsWidget(t *testing.T) {
	f := newPollerFixture(t)
	f.session.Bind(SessionGrant{EventID: "e-1"})
	f.http.respond = quoteResponder(`{"https://a/":{"price":12.34,"currency":"inr"}}`)

	f.poller.Tick()

	assert.Equal(t, "12.34 ", f.page.PriceText())
	assert.True(t, f.page.Visible())

	// exactly one price event with the observed values
	var priceEvents []recordedRequest
	for _, req := range f.http.recorded() {
		if req.Body["type"] == "price" {
			priceEvents = append(priceEvents, req)
		}
	}
	require.Len(t, priceEvents, 1)
	assert.Equal(t, 12.34, priceEvents[0].Body["price"])
	assert.Equal(t, "inr", priceEvents[0].Body["currency"])
	assert.Equal(t, "https://a/", priceEvents[0].Body["url"])
}

func TestPoller_QuoteRequestShape(t *testing.T) {
	f := newPollerFixture(t)
	f.http.respond = quoteResponder(`{}`)

	f.poller.Tick()

	req := f.http.recorded()[0]
	assert.Equal(t, "https://quote/v3/price", req.URL)
	assert.Equal(t, []any{"https://a/"}, req.Body["urls"])
	assert.Equal(t, "inr", req.Body["currency"])
}

func TestPoller_AtMostOnePriceEventPerVisit(t *testing.T) {
	f := newPollerFixture(t)
	f.session.Bind(SessionGrant{EventID: "e-1"})
	f.http.respond = quoteResponder(`{"https://a/":{"price":12.34,"currency":"inr"}}`)

	for i := 0; i < 5; i++ {
		f.poller.Tick()
	}

	count := 0
	for _, typ := range f.http.sentTypes() {
		if typ == "price" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestPoller_NewVisitEmitsFreshPriceEvent(t *testing.T) {
	f := newPollerFixture(t)
	f.session.Bind(SessionGrant{EventID: "e-1"})
	f.http.respond = quoteResponder(`{"https://a/":{"price":12.34,"currency":"inr"}}`)

	f.poller.Tick()
	f.state.BeginVisit("https://a/", time.Now())
	f.poller.Tick()

	count := 0
	for _, typ := range f.http.sentTypes() {
		if typ == "price" {
			count++
		}
	}
	assert.Equal(t, 2, count, "priced flag resets with the visit")
}

func TestPoller_MissingURLKeyHidesWidget(t *testing.T) {
	f := newPollerFixture(t)
	f.session.Bind(SessionGrant{EventID: "e-1"})
	f.http.respond = quoteResponder(`{"https://a/":{"price":12.34,"currency":"inr"}}`)
	f.poller.Tick()
	require.True(t, f.page.Visible())

	f.http.respond = quoteResponder(`{"https://other/":{"price":1,"currency":"inr"}}`)
	f.poller.Tick()

	assert.False(t, f.page.Visible())
	assert.False(t, f.state.IsPriced(), "hidden streak re-arms the price event")
}

func TestPoller_NonNumericPriceHidesWidget(t *testing.T) {
	f := newPollerFixture(t)
	f.http.respond = quoteResponder(`{"https://a/":{"currency":"inr"}}`)

	f.poller.Tick()

	assert.False(t, f.page.Visible())
	assert.NotContains(t, f.http.sentTypes(), "price")
}

func TestPoller_QAPFieldCountsAsPrice(t *testing.T) {
	f := newPollerFixture(t)
	f.session.Bind(SessionGrant{EventID: "e-1"})
	f.http.respond = quoteResponder(`{"https://a/":{"qap":7.891,"currency":"inr"}}`)

	f.poller.Tick()

	assert.Equal(t, "7.89 ", f.page.PriceText())
	assert.True(t, f.page.Visible())
}

func TestPoller_FetchErrorHidesAndRetriesNextTick(t *testing.T) {
	f := newPollerFixture(t)
	f.http.respond = func(req recordedRequest) (*HTTPResponse, error) {
		return nil, errors.New("network down")
	}

	f.poller.Tick()
	assert.False(t, f.page.Visible())

	f.http.respond = quoteResponder(`{"https://a/":{"price":5,"currency":"inr"}}`)
	f.poller.Tick()
	assert.True(t, f.page.Visible(), "next tick recovers")
}

func TestPoller_MalformedResponseIsNoQuote(t *testing.T) {
	f := newPollerFixture(t)
	f.http.respond = quoteResponder(`not json`)

	f.poller.Tick()

	assert.False(t, f.page.Visible())
	assert.NotContains(t, f.http.sentTypes(), "price")
}

func TestPoller_NoTargetURLSkipsTick(t *testing.T) {
	f := newPollerFixture(t)
	f.page.SetTargetURL("")

	f.poller.Tick()

	assert.Empty(t, f.http.recorded(), "no target, no fetch")
}

func TestPoller_QueuesPriceEventBeforeSessionReady(t *testing.T) {
	f := newPollerFixture(t)
	f.http.respond = quoteResponder(`{"https://a/":{"price":12.34,"currency":"inr"}}`)

	f.poller.Tick()
	f.poller.Tick()

	assert.NotContains(t, f.http.sentTypes(), "price", "unready session must queue, not send")
	assert.Equal(t, 1, f.pipeline.Len(), "queued once despite two ticks (optimistic mark)")
	assert.True(t, f.state.IsPriced())
}

func TestPoller_TickStraddlingNavigationYieldsToNewVisit(t *testing.T) {
	f := newPollerFixture(t)
	f.session.Bind(SessionGrant{EventID: "e-1"})

	// hold the quote fetch open so a navigation can land mid-flight
	release := make(chan struct{})
	f.http.respond = func(req recordedRequest) (*HTTPResponse, error) {
		if req.URL == "https://quote/v3/price" {
			<-release
			return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{"https://a/":{"price":12.34,"currency":"inr"}}`)}, nil
		}
		return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{}`)}, nil
	}

	done := make(chan struct{})
	go func() {
		f.poller.Tick()
		close(done)
	}()
	waitFor(t, time.Second, func() bool { return len(f.http.recorded()) >= 1 })

	f.state.BeginVisit("https://b/", time.Now())
	close(release)
	<-done

	assert.NotContains(t, f.http.sentTypes(), "price", "the stale tick must not emit")
	assert.False(t, f.state.IsPriced(), "the new visit's price event stays armed")

	// the new visit still gets its own price event
	f.page.SetTargetURL("https://b/")
	f.http.respond = func(req recordedRequest) (*HTTPResponse, error) {
		if req.URL == "https://quote/v3/price" {
			return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{"https://b/":{"price":7.50,"currency":"inr"}}`)}, nil
		}
		return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{}`)}, nil
	}
	f.poller.Tick()

	var priceURLs []any
	for _, req := range f.http.recorded() {
		if req.Body["type"] == "price" {
			priceURLs = append(priceURLs, req.Body["url"])
		}
	}
	assert.Equal(t, []any{"https://b/"}, priceURLs)
}

func TestPoller_DirectSendFailureRearms(t *testing.T) {
	f := newPollerFixture(t)
	f.session.Bind(SessionGrant{EventID: "e-1"})

	failing := true
	f.http.respond = func(req recordedRequest) (*HTTPResponse, error) {
		if req.URL == "https://quote/v3/price" {
			return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{"https://a/":{"price":12.34,"currency":"inr"}}`)}, nil
		}
		if failing && req.Body["type"] == "price" {
			return nil, fmt.Errorf("collector unreachable")
		}
		return &HTTPResponse{OK: true, Status: 200, Body: []byte(`{}`)}, nil
	}

	f.poller.Tick()
	assert.False(t, f.state.IsPriced(), "failed direct send resets the flag")

	failing = false
	f.poller.Tick()
	assert.True(t, f.state.IsPriced(), "next tick retries and succeeds")

	count := 0
	for _, typ := range f.http.sentTypes() {
		if typ == "price" {
			count++
		}
	}
	assert.Equal(t, 2, count, "one failed attempt, one successful")
}

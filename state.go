package pill

import (
	"sync"
	"time"
)

// VisitState tracks the page visit currently being heartbeated: the polled
// URL, when it was first seen, and whether a price event has been emitted
// for it. Every new visit bumps the generation so stale heartbeat chains
// can detect they have been superseded without being cancelled eagerly.
type VisitState struct {
	mu         sync.Mutex
	polledURL  string
	visitTime  time.Time
	generation uint64
	priced     bool
}

// NewVisitState returns an empty visit state (generation 0, nothing polled).
func NewVisitState() *VisitState {
	return &VisitState{}
}

// BeginVisit starts tracking url at the given time. The priced flag resets
// and the generation advances, retiring any previous heartbeat chain.
// Returns the new generation token.
func (v *VisitState) BeginVisit(url string, at time.Time) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.polledURL = url
	v.visitTime = at
	v.generation++
	v.priced = false
	return v.generation
}

// Current reports whether the given url/generation pair still identifies the
// active visit. Heartbeat chains check this at every iteration boundary.
func (v *VisitState) Current(url string, generation uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generation == generation && v.polledURL == url
}

// PolledURL returns the URL of the active visit, or "".
func (v *VisitState) PolledURL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.polledURL
}

// VisitTime returns when the active visit began.
func (v *VisitState) VisitTime() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visitTime
}

// Generation returns the token of the active visit.
func (v *VisitState) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generation
}

// MarkPriced sets the priced flag. Returns false if it was already set, so
// concurrent poller ticks emit at most one price event per visit.
func (v *VisitState) MarkPriced() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.priced {
		return false
	}
	v.priced = true
	return true
}

// MarkPricedIf is MarkPriced restricted to the visit identified by
// generation: a tick that started before a navigation cannot claim the new
// visit's one price event. Returns false when stale or already set.
func (v *VisitState) MarkPricedIf(generation uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.generation != generation || v.priced {
		return false
	}
	v.priced = true
	return true
}

// ResetPriced clears the priced flag so the next observation retries.
func (v *VisitState) ResetPriced() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.priced = false
}

// IsPriced reports whether a price event has been emitted for this visit.
func (v *VisitState) IsPriced() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.priced
}

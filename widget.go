package pill

import (
	"math"
	"strconv"
	"sync"
)

// Widget is the price pill's visibility and trend state machine. It starts
// hidden, becomes visible on the first valid price observation, and is
// forced back to hidden only when a fetch fails to produce a valid price.
// Hiding re-arms the show-once transition for the next observation streak.
type Widget struct {
	mu        sync.Mutex
	page      PageAdapter
	visible   bool
	lastPrice *float64
}

// NewWidget creates a hidden Widget rendering through page.
func NewWidget(page PageAdapter) *Widget {
	return &Widget{page: page}
}

// Observe records a successful price observation: updates the displayed
// text, shows the pill if hidden, and sets the trend indicator against the
// previous observation. Prices are rounded to 2 decimals before comparison
// and storage, so trend follows what the user actually sees. Equality
// resolves upward.
func (w *Widget) Observe(price float64) {
	rounded := roundPrice(price)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.page.SetPriceText(FormatPrice(rounded))

	if !w.visible {
		w.page.SetVisible(true)
		w.visible = true
	}

	if w.lastPrice != nil {
		if rounded >= *w.lastPrice {
			w.page.SetTrend(TrendUp)
		} else {
			w.page.SetTrend(TrendDown)
		}
	}

	w.lastPrice = &rounded
}

// Hide forces the pill back to hidden, clearing the trend indicator. The
// last observed price is kept so a later observation still gets a trend.
func (w *Widget) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.page.SetVisible(false)
	w.page.SetTrend(TrendNone)
	w.visible = false
}

// Visible reports whether the pill is currently shown.
func (w *Widget) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// LastPrice returns the previous observation (rounded), or nil before the
// first one.
func (w *Widget) LastPrice() *float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lastPrice == nil {
		return nil
	}
	price := *w.lastPrice
	return &price
}

// FormatPrice renders a price the way the pill displays it: two decimals
// and a trailing space before the unit element.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64) + " "
}

func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

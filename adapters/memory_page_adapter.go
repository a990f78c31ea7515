package adapters

import "sync"

// MemoryPageAdapter is an in-memory PageAdapter implementation.
// Useful for tests and for hosts that mirror the widget state into their own
// rendering layer.
type MemoryPageAdapter struct {
	mu sync.Mutex

	TrackingIDValue string
	PageURLValue    string
	TargetURLValue  string
	ReferrerValue   string
	Browser         Dimensions
	Screen          Dimensions
	Scroll          int

	priceText string
	visible   bool
	trend     TrendDirection
}

// Ensure MemoryPageAdapter implements PageAdapter interface
var _ PageAdapter = (*MemoryPageAdapter)(nil)

// NewMemoryPageAdapter creates a MemoryPageAdapter with the trend indicator
// cleared.
func NewMemoryPageAdapter() *MemoryPageAdapter {
	return &MemoryPageAdapter{trend: TrendNone}
}

func (m *MemoryPageAdapter) TrackingID() string { return m.TrackingIDValue }
func (m *MemoryPageAdapter) PageURL() string    { return m.PageURLValue }
func (m *MemoryPageAdapter) Referrer() string   { return m.ReferrerValue }

func (m *MemoryPageAdapter) TargetURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TargetURLValue
}

// SetTargetURL changes the quote target, simulating the host swapping the
// signal element's URL attribute.
func (m *MemoryPageAdapter) SetTargetURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TargetURLValue = url
}

func (m *MemoryPageAdapter) BrowserSize() Dimensions { return m.Browser }
func (m *MemoryPageAdapter) ScreenSize() Dimensions  { return m.Screen }
func (m *MemoryPageAdapter) ScrollPosition() int     { return m.Scroll }

func (m *MemoryPageAdapter) SetPriceText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priceText = text
}

func (m *MemoryPageAdapter) SetVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = visible
}

func (m *MemoryPageAdapter) SetTrend(direction TrendDirection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trend = direction
}

// PriceText returns the last written price text.
func (m *MemoryPageAdapter) PriceText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.priceText
}

// Visible returns the last written visibility.
func (m *MemoryPageAdapter) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Trend returns the last written trend direction.
func (m *MemoryPageAdapter) Trend() TrendDirection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trend
}

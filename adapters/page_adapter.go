package adapters

// PageAdapter is the surface the widget reads from and writes to on the host
// page. A browser bridge implements it over the signal element and the price
// pill children; tests and server-side hosts implement it in memory.
//
// Reads never fail: a missing attribute is reported as the zero value and the
// pipeline treats it as "not present this cycle".
type PageAdapter interface {
	// TrackingID returns the tracking identifier carried by the signal element.
	TrackingID() string
	// PageURL returns the URL of the page currently being viewed.
	PageURL() string
	// TargetURL returns the URL the price quote should be fetched for,
	// or "" when the signal element carries none.
	TargetURL() string
	// Referrer returns the document referrer, or "".
	Referrer() string

	// BrowserSize returns the viewport dimensions.
	BrowserSize() Dimensions
	// ScreenSize returns the device screen dimensions.
	ScreenSize() Dimensions
	// ScrollPosition returns the current vertical scroll offset.
	ScrollPosition() int

	// SetPriceText updates the displayed price text.
	SetPriceText(text string)
	// SetVisible shows or hides the price pill.
	SetVisible(visible bool)
	// SetTrend switches the trend indicator.
	SetTrend(direction TrendDirection)
}

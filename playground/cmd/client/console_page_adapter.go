package main

import (
	"fmt"
	"sync"

	"github.com/zzazz/pill-go/adapters"
)

// ConsolePageAdapter simulates a page: it prints every widget mutation and
// lets the menu mutate the page the way a real visitor would.
type ConsolePageAdapter struct {
	mu sync.Mutex

	trackingID string
	pageURL    string
	targetURL  string
	scroll     int
}

func NewConsolePageAdapter(trackingID, pageURL string) *ConsolePageAdapter {
	return &ConsolePageAdapter{
		trackingID: trackingID,
		pageURL:    pageURL,
		targetURL:  pageURL,
	}
}

func (c *ConsolePageAdapter) TrackingID() string { return c.trackingID }
func (c *ConsolePageAdapter) Referrer() string   { return "http://localhost/referrer" }

func (c *ConsolePageAdapter) PageURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageURL
}

func (c *ConsolePageAdapter) TargetURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetURL
}

func (c *ConsolePageAdapter) Navigate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageURL = url
	c.targetURL = url
}

func (c *ConsolePageAdapter) BrowserSize() adapters.Dimensions {
	return adapters.Dimensions{Width: 1280, Height: 720}
}

func (c *ConsolePageAdapter) ScreenSize() adapters.Dimensions {
	return adapters.Dimensions{Width: 1920, Height: 1080}
}

func (c *ConsolePageAdapter) ScrollPosition() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scroll
}

func (c *ConsolePageAdapter) ScrollTo(position int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scroll = position
}

func (c *ConsolePageAdapter) SetPriceText(text string) {
	fmt.Printf("💊 pill text: %q\n", text)
}

func (c *ConsolePageAdapter) SetVisible(visible bool) {
	if visible {
		fmt.Println("💊 pill shown")
	} else {
		fmt.Println("💊 pill hidden")
	}
}

func (c *ConsolePageAdapter) SetTrend(direction adapters.TrendDirection) {
	switch direction {
	case adapters.TrendUp:
		fmt.Println("💊 trend: ⬆️")
	case adapters.TrendDown:
		fmt.Println("💊 trend: ⬇️")
	default:
		fmt.Println("💊 trend: (none)")
	}
}

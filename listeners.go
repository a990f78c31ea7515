package pill

import (
	"strings"
	"time"
)

// Click describes a click the host observed: the element hit and the page
// coordinates.
type Click struct {
	Target Node
	X      int
	Y      int
}

// Listeners turns raw scroll/click notifications from the host into queued
// events. Both are trailing-edge debounced, so a burst within the window
// emits once. Events are enqueued regardless of session readiness; the
// pipeline holds them until the session binds. A debounce timer still
// pending when stop closes fires but emits nothing.
type Listeners struct {
	pipeline *Pipeline
	page     PageAdapter
	stop     chan struct{}

	scroll func()
	click  func(Click)
}

// NewListeners wires debounced scroll/click producers into pipeline. stop
// is shared with the owning client.
func NewListeners(pipeline *Pipeline, page PageAdapter, delay time.Duration, stop chan struct{}) *Listeners {
	l := &Listeners{pipeline: pipeline, page: page, stop: stop}
	l.scroll = Debounce(delay, l.emitScroll)
	l.click = DebounceValue(delay, l.emitClick)
	return l
}

// OnScroll is called by the host for every scroll notification.
func (l *Listeners) OnScroll() {
	l.scroll()
}

// OnClick is called by the host for every click notification.
func (l *Listeners) OnClick(click Click) {
	l.click(click)
}

func (l *Listeners) emitScroll() {
	if l.stopped() {
		return
	}
	l.pipeline.Enqueue(EventScroll, map[string]any{
		"scrollPosition": l.page.ScrollPosition(),
		"browser":        l.page.BrowserSize(),
		"device":         l.page.ScreenSize(),
	})
}

func (l *Listeners) emitClick(click Click) {
	if l.stopped() {
		return
	}

	// tag reports what was clicked; url where the click leads, if anywhere
	var tag any
	if click.Target != nil {
		tag = strings.ToLower(click.Target.Tag())
	}
	var url any
	if target := ResolveInteractiveAncestor(click.Target); target != nil {
		url = target.URL
	}

	l.pipeline.Enqueue(EventClick, map[string]any{
		"browser": l.page.BrowserSize(),
		"device":  l.page.ScreenSize(),
		"element": map[string]any{
			"tag":      tag,
			"url":      url,
			"position": map[string]any{"x": click.X, "y": click.Y},
		},
	})
}

func (l *Listeners) stopped() bool {
	select {
	case <-l.stop:
		return true
	default:
		return false
	}
}

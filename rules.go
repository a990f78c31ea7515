package pill

import (
	"encoding/json"
	"fmt"
	"time"
)

// Rules is the remote enable gate. The widget is suppressed entirely unless
// the rules file for the tracking id explicitly allows it: any fetch or
// parse failure reads as disabled.
type Rules struct {
	endpoint string
	http     HTTPAdapter
	logger   LoggerAdapter
	now      func() time.Time
}

// NewRules creates a Rules gate against the given base endpoint.
func NewRules(endpoint string, http HTTPAdapter, logger LoggerAdapter) *Rules {
	return &Rules{
		endpoint: endpoint,
		http:     http,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled fetches the rules for trackingID and reports whether the widget
// may show. Fail-closed.
func (r *Rules) Enabled(trackingID string) bool {
	// dt busts CDN caches
	url := fmt.Sprintf("%s/%s.json?dt=%d", r.endpoint, trackingID, r.now().UnixMilli())

	resp, err := r.http.Get(url)
	if err != nil {
		r.logger.Error("Rules fetch failed: %v", err)
		return false
	}
	if !resp.OK {
		r.logger.Warn("Rules endpoint returned status %d", resp.Status)
		return false
	}

	var rules struct {
		ShowWidget bool `json:"showWidget"`
	}
	if err := json.Unmarshal(resp.Body, &rules); err != nil {
		r.logger.Warn("Malformed rules response: %v", err)
		return false
	}
	return rules.ShowWidget
}

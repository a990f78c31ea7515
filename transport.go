package pill

import (
	"encoding/json"
)

// SendResult is the outcome of a collector send. Transport never surfaces
// errors to its callers: any network or decoding failure comes back as
// OK=false with the failure logged.
type SendResult struct {
	OK    bool
	Grant *SessionGrant
}

// Transport serializes event envelopes and posts them to the collector.
//
// The wire envelope spreads the payload at the top level:
//
//	{ "type": ..., <payload fields>, "id": event_id, "pageId": event_id }
//
// id/pageId are read from the session at send time, so events queued before
// the session was bound go out with the identifier current at flush time.
type Transport struct {
	endpoint   string
	trackingID string
	http       HTTPAdapter
	session    *Session
	logger     LoggerAdapter
}

// NewTransport creates a Transport posting to endpoint on behalf of
// trackingID.
func NewTransport(endpoint, trackingID string, http HTTPAdapter, session *Session, logger LoggerAdapter) *Transport {
	return &Transport{
		endpoint:   endpoint,
		trackingID: trackingID,
		http:       http,
		session:    session,
		logger:     logger,
	}
}

// Send posts one event envelope. Best-effort: failures are logged and
// reported through SendResult.OK only.
func (t *Transport) Send(eventType string, payload map[string]any) *SendResult {
	envelope := t.envelope(eventType, payload)
	headers := t.headers()

	resp, err := t.http.Post(t.endpoint, envelope, headers)
	if err != nil {
		t.logger.Error("Failed to send event %s: %v", eventType, err)
		metricEventsFailed.WithLabelValues(eventType).Inc()
		return &SendResult{OK: false}
	}
	if !resp.OK {
		t.logger.Warn("Collector rejected event %s: %v (status %d)", eventType, &HTTPError{Status: resp.Status}, resp.Status)
		metricEventsFailed.WithLabelValues(eventType).Inc()
		return &SendResult{OK: false}
	}

	metricEventsDelivered.WithLabelValues(eventType).Inc()
	return &SendResult{OK: true, Grant: decodeGrant(resp.Body)}
}

func (t *Transport) envelope(eventType string, payload map[string]any) map[string]any {
	envelope := make(map[string]any, len(payload)+3)
	for k, v := range payload {
		envelope[k] = v
	}
	envelope["type"] = eventType

	// null on the wire until the session is bound
	var id any
	if eventID := t.session.EventID(); eventID != "" {
		id = eventID
	}
	envelope["id"] = id
	envelope["pageId"] = id
	return envelope
}

func (t *Transport) headers() map[string]string {
	headers := map[string]string{
		"Accept":      "application/json",
		"tracking-id": t.trackingID,
	}
	if userID := t.session.UserID(); userID != "" {
		headers["user-id"] = userID
	}
	return headers
}

// decodeGrant parses identifiers out of a collector response body. A body
// that is not JSON, or carries no identifiers, yields nil — the caller
// treats that the same as no grant.
func decodeGrant(body []byte) *SessionGrant {
	if len(body) == 0 {
		return nil
	}
	var grant SessionGrant
	if err := json.Unmarshal(body, &grant); err != nil {
		return nil
	}
	if grant.UserID == "" && grant.EventID == "" {
		return nil
	}
	return &grant
}

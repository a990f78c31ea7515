package pill

import "time"

// HeartbeatInterval computes the wait before the next poll heartbeat from
// how long the visit has been open: 5 s for the first 10 minutes, 60 s
// after. Pure function of the two timestamps.
func HeartbeatInterval(now, visitTime time.Time) time.Duration {
	if now.Sub(visitTime) > SlowHeartbeatAfter {
		return SlowHeartbeatInterval
	}
	return DefaultHeartbeatInterval
}

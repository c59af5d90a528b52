package exam

import "time"

// tickMsg drives the countdown once a second.
type tickMsg time.Time

// recordedMsg reports the outcome of persisting an attempt event.
type recordedMsg struct {
	action string
	err    error
}

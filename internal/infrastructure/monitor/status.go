package monitor

import "time"

// Status is one snapshot of console health: whether the remote API answers
// and whether a usable session is on disk.
type Status struct {
	API            bool
	SessionPresent bool
	SessionExpired bool
	LastCheck      time.Time
}

// Healthy reports whether the console can serve authenticated screens.
func (s Status) Healthy() bool {
	return s.API && s.SessionPresent && !s.SessionExpired
}

package services

import "time"

// SetClock overrides the forwarder's clock for deterministic tests.
func (f *Forwarder) SetClock(now func() time.Time) {
	f.now = now
}

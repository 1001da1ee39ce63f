package domain

import "time"

// Slot represents a candidate appointment start of fixed service duration
// within a provider's working hours
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// Duration returns the slot length
func (s *Slot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

package domain

import "time"

// Call logs when a reported call started and ended at a call center,
// together with its derived duration.
type Call struct {
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
	Duration  *Duration `json:"duration,omitempty"`
}

// DurationOf derives the call elapsed time in milliseconds. Unset start or
// end times default to now, so an empty call has a duration of roughly zero.
func DurationOf(c *Call) int64 {
	now := time.Now()
	if c.StartedAt.IsZero() {
		c.StartedAt = now
	}
	if c.EndedAt.IsZero() {
		c.EndedAt = now
	}
	return c.EndedAt.Sub(c.StartedAt).Milliseconds()
}

// Normalize recomputes the call duration and its breakdown. Runs before any
// other validation on the parent request.
func (c *Call) Normalize() error {
	ms := DurationOf(c)
	if ms < 0 {
		ms = -ms
	}
	c.Duration = &Duration{Milliseconds: ms}
	return ParseDuration(c.Duration)
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	millisPerSecond int64 = 1000
	millisPerMinute int64 = 60 * millisPerSecond
	millisPerHour   int64 = 60 * millisPerMinute
	millisPerDay    int64 = 24 * millisPerHour
)

// Duration expresses an elapsed time both as raw milliseconds and as a
// calendar-agnostic breakdown. Milliseconds is the source of truth; the
// remaining fields are derived and never fed back into it.
//
// Years and Months are carried for wire compatibility but are always zero;
// no calendar-aware decomposition is attempted.
type Duration struct {
	Years        int    `json:"years"`
	Months       int    `json:"months"`
	Days         int    `json:"days"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	Seconds      int    `json:"seconds"`
	Milliseconds int64  `json:"milliseconds"`
	Human        string `json:"human,omitempty"`
}

// ParseDuration recomputes the derived parts of d from Milliseconds using a
// base-60/24 division chain and renders the human readable form with whole
// second precision. A nil duration is left untouched so callers holding no
// duration at all pass through unchanged.
func ParseDuration(d *Duration) error {
	if d == nil {
		return nil
	}
	if d.Milliseconds < 0 {
		return fmt.Errorf("invalid duration: %dms", d.Milliseconds)
	}

	ms := d.Milliseconds
	d.Days = int(ms / millisPerDay)
	ms %= millisPerDay
	d.Hours = int(ms / millisPerHour)
	ms %= millisPerHour
	d.Minutes = int(ms / millisPerMinute)
	ms %= millisPerMinute
	d.Seconds = int(ms / millisPerSecond)

	d.Human = d.humanize()
	return nil
}

// humanize renders e.g. "1d 1h 24m 47s", omitting zero units. A zero
// duration renders as "0s" so at least one unit is always shown.
func (d *Duration) humanize() string {
	parts := make([]string, 0, 4)
	if d.Days > 0 {
		parts = append(parts, strconv.Itoa(d.Days)+"d")
	}
	if d.Hours > 0 {
		parts = append(parts, strconv.Itoa(d.Hours)+"h")
	}
	if d.Minutes > 0 {
		parts = append(parts, strconv.Itoa(d.Minutes)+"m")
	}
	if d.Seconds > 0 {
		parts = append(parts, strconv.Itoa(d.Seconds)+"s")
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

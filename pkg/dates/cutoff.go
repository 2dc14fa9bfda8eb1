package dates

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidCutoff = errors.New("cutoff must be a time of day in HH:MM format")

// CutoffTime is the daily boundary after which today can no longer be ordered
type CutoffTime struct {
	Hour   int
	Minute int
}

// ParseCutoff parses "HH:MM" (24h clock)
func ParseCutoff(s string) (CutoffTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return CutoffTime{}, fmt.Errorf("%w: %q", ErrInvalidCutoff, s)
	}
	return CutoffTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Validate checks the hour and minute ranges
func (c CutoffTime) Validate() error {
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidCutoff, c.Hour, c.Minute)
	}
	return nil
}

// On returns the cutoff instant on the calendar day of d, in d's location
func (c CutoffTime) On(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, c.Hour, c.Minute, 0, 0, d.Location())
}

// Passed reports whether now is strictly after the cutoff of its own day.
// A moment exactly at the cutoff still counts as before it.
func (c CutoffTime) Passed(now time.Time) bool {
	return now.After(c.On(now))
}

func (c CutoffTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

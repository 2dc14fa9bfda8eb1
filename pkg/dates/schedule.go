package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the canonical, sortable form used to compare order dates
const ISOLayout = "2006-01-02"

var (
	ErrEmptySchedule  = errors.New("schedule must contain at least one day")
	ErrInvalidDayFlag = errors.New("schedule days may only contain 1/0, y/n or t/f")
)

// Schedule is a repeating cycle of school days anchored at StartDate.
// It is immutable once built by NewSchedule.
type Schedule struct {
	startDate time.Time
	days      []bool
}

// NewSchedule copies days and anchors the cycle at the calendar date of start
func NewSchedule(start time.Time, days []bool) (*Schedule, error) {
	if len(days) == 0 {
		return nil, ErrEmptySchedule
	}
	cycle := make([]bool, len(days))
	copy(cycle, days)
	return &Schedule{
		startDate: civil(start),
		days:      cycle,
	}, nil
}

// ParseScheduleDays turns a compact string such as "1111100" into a day cycle
func ParseScheduleDays(s string) ([]bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySchedule
	}
	days := make([]bool, 0, len(s))
	for i, r := range strings.ToLower(s) {
		switch r {
		case '1', 'y', 't':
			days = append(days, true)
		case '0', 'n', 'f':
			days = append(days, false)
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidDayFlag, r, i)
		}
	}
	return days, nil
}

// StartDate returns the anchor of the cycle
func (s *Schedule) StartDate() time.Time {
	return s.startDate
}

// Len returns the cycle length
func (s *Schedule) Len() int {
	return len(s.days)
}

// IsSchoolDay reports whether orders may be placed on d in principle
func (s *Schedule) IsSchoolDay(d time.Time) bool {
	return s.days[ScheduleIndex(d, s.startDate, len(s.days))]
}

// ScheduleIndex returns the position of d within a cycle of the given length
// anchored at start. The result is in [0, length) even when d precedes start.
// length must be positive.
func ScheduleIndex(d, start time.Time, length int) int {
	idx := daysBetween(start, d) % length
	if idx < 0 {
		idx += length
	}
	return idx
}

// daysBetween counts whole calendar days from a to b, ignoring clock time and DST
func daysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

// civil drops the clock and zone of t, keeping its calendar date as UTC midnight
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

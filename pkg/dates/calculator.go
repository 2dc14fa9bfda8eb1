package dates

import (
	"iter"
	"time"
)

// DefaultWindow is the number of calendar days scanned for order dates
const DefaultWindow = 14

// DefaultDisplayLayout renders dates as "Month Day, Year"
const DefaultDisplayLayout = "January 2, 2006"

// Formatter maps a calendar date to the string shown to users
type Formatter func(time.Time) string

// DisplayFormatter returns a Formatter using a time layout
func DisplayFormatter(layout string) Formatter {
	return func(t time.Time) string {
		return t.Format(layout)
	}
}

// Booking is the part of an existing order the calculator needs
type Booking struct {
	ID   string
	Date string // ISO 2006-01-02
}

// DateOption is one selectable order date
type DateOption struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// Calculator produces the dates a new or edited order may be placed on.
// It holds configuration only and is safe for concurrent use.
type Calculator struct {
	Schedule *Schedule
	Cutoff   CutoffTime
	Window   int
	Location *time.Location
	Format   Formatter
}

// NewCalculator builds a calculator with the default window and display format
func NewCalculator(schedule *Schedule, cutoff CutoffTime, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{
		Schedule: schedule,
		Cutoff:   cutoff,
		Window:   DefaultWindow,
		Location: loc,
		Format:   DisplayFormatter(DefaultDisplayLayout),
	}
}

// Days yields n consecutive calendar dates starting at the date of start.
// Each yielded value is midnight in start's location.
func Days(start time.Time, n int) iter.Seq[time.Time] {
	y, m, d := start.Date()
	loc := start.Location()
	return func(yield func(time.Time) bool) {
		for i := 0; i < n; i++ {
			if !yield(time.Date(y, m, d+i, 0, 0, 0, 0, loc)) {
				return
			}
		}
	}
}

// FirstDay returns today in the calculator's location, or tomorrow when now
// is past the cutoff
func (c *Calculator) FirstDay(now time.Time) time.Time {
	local := now.In(c.location())
	y, m, d := local.Date()
	if c.Cutoff.Passed(local) {
		d++
	}
	return time.Date(y, m, d, 0, 0, 0, 0, c.location())
}

// OptionValues returns the selectable dates in ascending order.
// Dates held by bookings are skipped unless they belong to focused.
func (c *Calculator) OptionValues(now time.Time, bookings []Booking, focused *Booking) []DateOption {
	booked := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		booked[b.Date] = struct{}{}
	}

	format := c.Format
	if format == nil {
		format = DisplayFormatter(DefaultDisplayLayout)
	}

	options := []DateOption{}
	for day := range Days(c.FirstDay(now), c.window()) {
		if !c.Schedule.IsSchoolDay(day) {
			continue
		}
		iso := day.Format(ISOLayout)
		if _, taken := booked[iso]; taken && (focused == nil || focused.Date != iso) {
			continue
		}
		options = append(options, DateOption{Date: iso, Label: format(day)})
	}
	return options
}

// Options returns the display labels of OptionValues
func (c *Calculator) Options(now time.Time, bookings []Booking, focused *Booking) []string {
	values := c.OptionValues(now, bookings, focused)
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = v.Label
	}
	return labels
}

// Allows reports whether iso is one of the selectable dates
func (c *Calculator) Allows(now time.Time, bookings []Booking, focused *Booking, iso string) bool {
	for _, opt := range c.OptionValues(now, bookings, focused) {
		if opt.Date == iso {
			return true
		}
	}
	return false
}

func (c *Calculator) window() int {
	if c.Window <= 0 {
		return DefaultWindow
	}
	return c.Window
}

func (c *Calculator) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

package domain

import (
	"fmt"
	"time"
)

// Interval is a half-open period [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Slot is a free interview slot.
type Slot struct {
	Interval
	StartLabel string `json:"start_str"`
	EndLabel   string `json:"end_str"`
	Date       string `json:"date"`
}

// NewSlot builds a slot with display labels in the interval's location.
func NewSlot(start, end time.Time) Slot {
	return Slot{
		Interval:   Interval{Start: start, End: end},
		StartLabel: start.Format("15:04"),
		EndLabel:   end.Format("15:04"),
		Date:       start.Format(time.DateOnly),
	}
}

// WorkWindow is the daily bookable window, expressed as offsets from midnight.
type WorkWindow struct {
	Start time.Duration
	End   time.Duration
}

// On returns the window's concrete bounds on the given day, in day's location.
func (w WorkWindow) On(day time.Time) (time.Time, time.Time) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(w.Start), midnight.Add(w.End)
}

// SchedulerConfig holds availability search parameters.
type SchedulerConfig struct {
	// Window is the bookable part of each day (default 09:00-17:00).
	Window WorkWindow

	// Duration is the interview length (default 60m).
	Duration time.Duration

	// Step is the stride between filler slots after the last busy interval (default 30m).
	Step time.Duration

	// MaxSlots caps the number of returned slots (default 5).
	MaxSlots int

	// LookaheadDays is how many days NextAvailable searches (default 7).
	LookaheadDays int

	// Location is the time zone of the work window.
	Location *time.Location
}

// DefaultSchedulerConfig returns sensible defaults for the scheduler.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Window:        WorkWindow{Start: 9 * time.Hour, End: 17 * time.Hour},
		Duration:      60 * time.Minute,
		Step:          30 * time.Minute,
		MaxSlots:      5,
		LookaheadDays: 7,
		Location:      time.Local,
	}
}

// Availability is the set of free slots found for one day.
type Availability struct {
	Date  string `json:"date"`
	Slots []Slot `json:"available_slots"`
}

// ParseDay parses a YYYY-MM-DD date. Only the calendar date of the result
// is meaningful. An empty string returns the zero time.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return day, nil
}

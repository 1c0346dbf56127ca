package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// FreeSlots sweeps the busy intervals of one day and returns up to maxSlots
// free slots of the given duration inside the work window, earliest first.
//
// Each gap before a busy interval yields at most one slot starting at the
// cursor. After the last busy interval the rest of the window is filled with
// slots starting every step; with step < duration those filler slots overlap.
// A non-positive step falls back to duration and a non-positive maxSlots to
// the default cap of five.
func FreeSlots(
	day time.Time,
	window domain.WorkWindow,
	busy []domain.Interval,
	duration, step time.Duration,
	maxSlots int,
) []domain.Slot {
	if duration <= 0 {
		return nil
	}
	if step <= 0 {
		step = duration
	}
	if maxSlots <= 0 {
		maxSlots = domain.DefaultSchedulerConfig().MaxSlots
	}

	start, end := window.On(day)

	sorted := make([]domain.Interval, len(busy))
	copy(sorted, busy)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	slots := make([]domain.Slot, 0, maxSlots)
	cursor := start
	for _, b := range sorted {
		if len(slots) == maxSlots {
			return slots
		}
		slotEnd := cursor.Add(duration)
		if !slotEnd.After(b.Start) && !slotEnd.After(end) {
			slots = append(slots, domain.NewSlot(cursor, slotEnd))
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}

	for len(slots) < maxSlots && !cursor.Add(duration).After(end) {
		slots = append(slots, domain.NewSlot(cursor, cursor.Add(duration)))
		cursor = cursor.Add(step)
	}

	return slots
}

// AvailabilityService finds free interview slots in the calendar.
type AvailabilityService struct {
	calendar driven.CalendarService
	config   domain.SchedulerConfig
	timeout  time.Duration
	now      func() time.Time
}

// NewAvailabilityService creates an availability service. calendar may be nil.
func NewAvailabilityService(calendar driven.CalendarService, config domain.SchedulerConfig, timeout time.Duration) *AvailabilityService {
	if config.Location == nil {
		config.Location = time.Local
	}
	return &AvailabilityService{
		calendar: calendar,
		config:   config,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Slots returns the free slots on the calendar date of day, in the
// configured time zone.
func (a *AvailabilityService) Slots(ctx context.Context, day time.Time) (*domain.Availability, error) {
	if a.calendar == nil {
		return nil, domain.NewCapabilityError(domain.CapabilityCalendar, domain.ErrCalendarUnavailable)
	}

	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, a.config.Location)
	start, end := a.config.Window.On(day)

	calCtx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()
	busy, err := a.calendar.ListBusy(calCtx, start, end)
	if err != nil {
		return nil, domain.NewCapabilityError(domain.CapabilityCalendar, err)
	}

	for i := range busy {
		busy[i].Start = busy[i].Start.In(a.config.Location)
		busy[i].End = busy[i].End.In(a.config.Location)
	}

	slots := FreeSlots(day, a.config.Window, busy, a.config.Duration, a.config.Step, a.config.MaxSlots)
	logger.Debug("Availability %s: %d busy, %d free", day.Format(time.DateOnly), len(busy), len(slots))

	return &domain.Availability{Date: day.Format(time.DateOnly), Slots: slots}, nil
}

// NextAvailable returns the first day after from, within the lookahead,
// that has at least one free slot. Returns domain.ErrNoSlots when none has.
func (a *AvailabilityService) NextAvailable(ctx context.Context, from time.Time) (*domain.Availability, error) {
	if from.IsZero() {
		from = a.now()
	}
	days := a.config.LookaheadDays
	if days <= 0 {
		days = 1
	}

	from = from.In(a.config.Location)
	for d := 1; d <= days; d++ {
		av, err := a.Slots(ctx, from.AddDate(0, 0, d))
		if err != nil {
			return nil, err
		}
		if len(av.Slots) > 0 {
			return av, nil
		}
	}

	return nil, fmt.Errorf("%w in the next %d days", domain.ErrNoSlots, days)
}

// Location returns the scheduling time zone.
func (a *AvailabilityService) Location() *time.Location {
	return a.config.Location
}

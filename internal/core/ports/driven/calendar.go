package driven

import (
	"context"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// CalendarService lists busy time and creates interview events.
// This is an optional service - when nil, scheduling reports the calendar as unavailable.
type CalendarService interface {
	// ListBusy returns the intervals occupied by events overlapping [start, end).
	// All-day events are ignored.
	ListBusy(ctx context.Context, start, end time.Time) ([]domain.Interval, error)

	// CreateEvent creates a calendar event and returns the booking details.
	CreateEvent(ctx context.Context, req domain.EventRequest) (*domain.BookingResult, error)
}

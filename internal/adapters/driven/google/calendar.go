package google

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ensure CalendarService implements the interface.
var _ driven.CalendarService = (*CalendarService)(nil)

// DefaultCalendarID is the authorised user's primary calendar.
const DefaultCalendarID = "primary"

// CalendarService lists busy time and books interviews on a Google calendar.
type CalendarService struct {
	svc        *calendar.Service
	calendarID string
	limiter    *RateLimiter
}

// NewCalendarService creates a calendar client. Callers pass credentials as
// client options, normally from ClientOptions.
func NewCalendarService(ctx context.Context, calendarID string, opts ...option.ClientOption) (*CalendarService, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	return &CalendarService{
		svc:        svc,
		calendarID: calendarID,
		limiter:    NewRateLimiter(ServiceCalendar),
	}, nil
}

// ListBusy returns the intervals of timed events overlapping [start, end),
// ordered by start. All-day, cancelled and transparent events do not block time.
func (c *CalendarService) ListBusy(ctx context.Context, start, end time.Time) ([]domain.Interval, error) {
	call := c.svc.Events.List(c.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	var busy []domain.Interval
	err := c.paged(ctx, func(pageToken string) (string, error) {
		if pageToken != "" {
			call.PageToken(pageToken)
		}
		events, err := call.Do()
		if err != nil {
			return "", err
		}
		for _, ev := range events.Items {
			if iv, ok := eventInterval(ev); ok {
				busy = append(busy, iv)
			}
		}
		return events.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}
	return busy, nil
}

// CreateEvent inserts the interview event with a Meet conference attached.
func (c *CalendarService) CreateEvent(ctx context.Context, req domain.EventRequest) (*domain.BookingResult, error) {
	event := &calendar.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start:       &calendar.EventDateTime{DateTime: req.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         &calendar.EventDateTime{DateTime: req.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	for _, email := range req.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}
	if len(req.Reminders) > 0 {
		event.Reminders = &calendar.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		}
		for _, r := range req.Reminders {
			event.Reminders.Overrides = append(event.Reminders.Overrides, &calendar.EventReminder{
				Method:  r.Method,
				Minutes: r.Minutes,
			})
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	created, err := c.svc.Events.Insert(c.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.wrap(err)
	}

	logger.Debug("calendar: created event %s on %s", created.Id, c.calendarID)
	return &domain.BookingResult{
		EventID:      created.Id,
		EventTitle:   created.Summary,
		MeetingLink:  created.HangoutLink,
		CalendarLink: created.HtmlLink,
	}, nil
}

// paged drives a list call until the page token runs out, waiting on the
// rate limiter before each page.
func (c *CalendarService) paged(ctx context.Context, fetch func(pageToken string) (string, error)) error {
	token := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		next, err := fetch(token)
		if err != nil {
			return c.wrap(err)
		}
		if next == "" {
			return nil
		}
		token = next
	}
}

func (c *CalendarService) wrap(err error) error {
	if IsRateLimited(err) {
		c.limiter.RecordRateLimitError(retryAfter(err))
	}
	return WrapError(err, domain.ErrCalendarUnavailable)
}

// eventInterval extracts the busy interval of a timed event.
func eventInterval(ev *calendar.Event) (domain.Interval, bool) {
	if ev.Status == "cancelled" || ev.Transparency == "transparent" {
		return domain.Interval{}, false
	}
	if ev.Start == nil || ev.End == nil || ev.Start.DateTime == "" || ev.End.DateTime == "" {
		return domain.Interval{}, false
	}
	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return domain.Interval{}, false
	}
	end, err := time.Parse(time.RFC3339, ev.End.DateTime)
	if err != nil || !end.After(start) {
		return domain.Interval{}, false
	}
	return domain.Interval{Start: start, End: end}, true
}

// ClientOptions builds authenticated client options from the Google settings.
func ClientOptions(ctx context.Context, settings domain.GoogleSettings) ([]option.ClientOption, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("google credentials not configured: %w", domain.ErrCalendarUnavailable)
	}
	cfg, err := LoadConfig(settings.CredentialsFile)
	if err != nil {
		return nil, err
	}
	ts, err := NewTokenSource(ctx, cfg, settings.TokenFile)
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithTokenSource(ts)}, nil
}

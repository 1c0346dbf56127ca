package driving

import (
	"context"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// ScheduleRequest asks the booking workflow to book an interview.
type ScheduleRequest struct {
	// WorkspaceID and CandidateID locate the candidate in the index when
	// Candidate carries no email.
	WorkspaceID string
	CandidateID string

	// Candidate overrides the indexed contact details when set.
	Candidate *domain.CandidateContact

	// Job describes the position. Empty fields take defaults.
	Job domain.JobInfo

	// Date pins the interview day. Zero searches from tomorrow onwards.
	Date time.Time
}

// SchedulingService exposes availability and interview booking.
type SchedulingService interface {
	// AvailableSlots returns free slots on the given day.
	AvailableSlots(ctx context.Context, day time.Time) (*domain.Availability, error)

	// NextAvailable returns the first day after from with free slots.
	NextAvailable(ctx context.Context, from time.Time) (*domain.Availability, error)

	// Schedule runs the booking workflow. Stage failures are reported in the
	// result; an error is returned only for invalid requests.
	Schedule(ctx context.Context, req ScheduleRequest) (*domain.WorkflowResult, error)

	// ManualEmail renders the invitation for a booking so it can be sent by hand.
	ManualEmail(ctx context.Context, candidate domain.CandidateContact, job domain.JobInfo, booking domain.BookingResult) (*domain.EmailData, error)
}

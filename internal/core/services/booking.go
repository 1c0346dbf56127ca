package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Ensure BookingWorkflow implements the interface.
var _ driving.SchedulingService = (*BookingWorkflow)(nil)

// BookingWorkflow finds a slot, books it and invites the candidate.
// Email delivery is a soft dependency: its failure never undoes a booking.
type BookingWorkflow struct {
	availability *AvailabilityService
	calendar     driven.CalendarService
	email        driven.EmailTransport
	candidates   candidateDirectory
	job          domain.JobInfo
	timeouts     domain.Timeouts
	now          func() time.Time
}

// NewBookingWorkflow creates a booking workflow.
// calendar and email may be nil; job supplies defaults for requests without job details.
func NewBookingWorkflow(
	availability *AvailabilityService,
	calendar driven.CalendarService,
	email driven.EmailTransport,
	store driven.VectorStore,
	job domain.JobInfo,
	timeouts domain.Timeouts,
) *BookingWorkflow {
	return &BookingWorkflow{
		availability: availability,
		calendar:     calendar,
		email:        email,
		candidates:   candidateDirectory{store: store, timeout: timeouts.Vector},
		job:          job.WithDefaults(),
		timeouts:     timeouts,
		now:          time.Now,
	}
}

// AvailableSlots returns free slots on the given day.
func (w *BookingWorkflow) AvailableSlots(ctx context.Context, day time.Time) (*domain.Availability, error) {
	return w.availability.Slots(ctx, day)
}

// NextAvailable returns the first day after from with free slots.
func (w *BookingWorkflow) NextAvailable(ctx context.Context, from time.Time) (*domain.Availability, error) {
	if from.IsZero() {
		from = w.now()
	}
	return w.availability.NextAvailable(ctx, from)
}

// stageLog records workflow stages in order.
type stageLog struct {
	stages []domain.StageRecord
}

func (l *stageLog) start(stage domain.Stage, message string) {
	l.stages = append(l.stages, domain.StageRecord{Stage: stage, Status: domain.StatusInProgress, Message: message})
}

func (l *stageLog) finish(status domain.StageStatus, message string) {
	last := &l.stages[len(l.stages)-1]
	last.Status = status
	last.Message = message
}

// Schedule runs the booking workflow for one candidate.
func (w *BookingWorkflow) Schedule(ctx context.Context, req driving.ScheduleRequest) (*domain.WorkflowResult, error) {
	logger.Section("Interview Booking")

	candidate, err := w.resolveCandidate(ctx, req)
	if err != nil {
		return nil, err
	}
	job := w.jobFor(req.Job)

	var log stageLog
	result := &domain.WorkflowResult{}
	fail := func(err error) (*domain.WorkflowResult, error) {
		result.Success = false
		result.Error = err.Error()
		result.Stages = log.stages
		logger.Warn("Booking failed: %v", err)
		return result, nil
	}

	log.start(domain.StageThinking, "Analyzing your request and preparing interview scheduling...")
	log.finish(domain.StatusCompleted, fmt.Sprintf("Preparing interview for %s", candidate.DisplayName()))

	log.start(domain.StageCheckingSchedule, "Checking your calendar for available slots...")
	availability, err := w.findSlots(ctx, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrNoSlots) {
			log.finish(domain.StatusFailed, "No available slots found")
			return fail(domain.ErrNoSlots)
		}
		log.finish(domain.StatusFailed, "Calendar check failed")
		return fail(err)
	}
	log.finish(domain.StatusCompleted, fmt.Sprintf("Found %d available slots", len(availability.Slots)))

	log.start(domain.StageBookingInterview, "Booking the first available interview slot...")
	booking, err := w.book(ctx, availability.Slots[0], candidate, job)
	if err != nil {
		log.finish(domain.StatusFailed, "Booking failed: "+err.Error())
		return fail(err)
	}
	log.finish(domain.StatusCompleted, "Interview booked for "+booking.StartTime)
	result.Success = true
	result.Booking = booking

	log.start(domain.StageGeneratingEmail, "Generating professional interview invitation email...")
	email := RenderInvitation(candidate, job, booking.Start, booking.CalendarLink)
	result.Email = &email
	log.finish(domain.StatusCompleted, "Professional email generated")

	log.start(domain.StageSendingEmail, fmt.Sprintf("Sending email to %s...", orDefault(candidate.Email, "candidate")))
	sent := w.send(ctx, email)
	result.EmailResult = &sent
	if sent.Success {
		log.finish(domain.StatusCompleted, "Email sent successfully!")
	} else {
		log.finish(domain.StatusFailed, "Email sending failed: "+sent.Error)
		result.ManualEmailOption = true
	}

	result.Stages = log.stages
	logger.Info("Interview booked: %s (email sent: %t)", booking.EventTitle, sent.Success)
	return result, nil
}

// ManualEmail renders the invitation for an existing booking.
func (w *BookingWorkflow) ManualEmail(
	_ context.Context,
	candidate domain.CandidateContact,
	job domain.JobInfo,
	booking domain.BookingResult,
) (*domain.EmailData, error) {
	start := booking.Start
	if start.IsZero() {
		parsed, err := time.ParseInLocation(bookingTimeLayout, booking.StartTime, w.availability.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: start_time %q: %v", domain.ErrInvalidInput, booking.StartTime, err)
		}
		start = parsed
	}
	email := RenderInvitation(candidate, w.jobFor(job), start, booking.CalendarLink)
	return &email, nil
}

func (w *BookingWorkflow) resolveCandidate(ctx context.Context, req driving.ScheduleRequest) (domain.CandidateContact, error) {
	if req.Candidate != nil && req.Candidate.Email != "" {
		return *req.Candidate, nil
	}
	if strings.TrimSpace(req.WorkspaceID) == "" || strings.TrimSpace(req.CandidateID) == "" {
		return domain.CandidateContact{}, fmt.Errorf("%w: workspace_id and resume_id are required", domain.ErrInvalidInput)
	}
	contact, _, err := w.candidates.lookup(ctx, req.WorkspaceID, req.CandidateID)
	if err != nil {
		return domain.CandidateContact{}, err
	}
	if req.Candidate != nil && req.Candidate.Name != "" {
		contact.Name = req.Candidate.Name
	}
	return contact, nil
}

func (w *BookingWorkflow) jobFor(job domain.JobInfo) domain.JobInfo {
	if job.Title == "" {
		job.Title = w.job.Title
	}
	if job.Company == "" {
		job.Company = w.job.Company
	}
	return job.WithDefaults()
}

func (w *BookingWorkflow) findSlots(ctx context.Context, day time.Time) (*domain.Availability, error) {
	if !day.IsZero() {
		av, err := w.availability.Slots(ctx, day)
		if err != nil {
			return nil, err
		}
		if len(av.Slots) == 0 {
			return nil, domain.ErrNoSlots
		}
		return av, nil
	}
	return w.availability.NextAvailable(ctx, w.now())
}

func (w *BookingWorkflow) book(
	ctx context.Context,
	slot domain.Slot,
	candidate domain.CandidateContact,
	job domain.JobInfo,
) (*domain.BookingResult, error) {
	if w.calendar == nil {
		return nil, domain.NewCapabilityError(domain.CapabilityCalendar, domain.ErrCalendarUnavailable)
	}

	req := domain.EventRequest{
		Title:       fmt.Sprintf("Interview: %s - %s", candidate.DisplayName(), job.Title),
		Description: eventDescription(candidate, job),
		Start:       slot.Start.UTC(),
		End:         slot.End.UTC(),
		Reminders:   domain.DefaultReminders(),
	}
	if candidate.Email != "" {
		req.Attendees = []string{candidate.Email}
	}

	calCtx, cancel := withTimeout(ctx, w.timeouts.Calendar)
	defer cancel()
	created, err := w.calendar.CreateEvent(calCtx, req)
	if err != nil {
		return nil, domain.NewCapabilityError(domain.CapabilityCalendar, err)
	}

	booking := *created
	booking.EventTitle = req.Title
	booking.Start = slot.Start
	booking.End = slot.End
	booking.StartTime = slot.Start.Format(bookingTimeLayout)
	booking.EndTime = slot.End.Format(bookingTimeLayout)
	return &booking, nil
}

func (w *BookingWorkflow) send(ctx context.Context, email domain.EmailData) domain.EmailResult {
	if strings.TrimSpace(email.To) == "" {
		return domain.EmailResult{Error: "no recipient", ManualRequired: true}
	}
	if w.email == nil {
		return domain.EmailResult{Error: "email transport not configured", ManualRequired: true}
	}

	sendCtx, cancel := withTimeout(ctx, w.timeouts.Email)
	defer cancel()
	if err := w.email.Send(sendCtx, email); err != nil {
		return domain.EmailResult{
			Error:          domain.NewCapabilityError(domain.CapabilityEmail, err).Error(),
			ManualRequired: true,
		}
	}
	return domain.EmailResult{Success: true, Message: "Email sent successfully"}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package domain

import "time"

// Stage is a step of the booking workflow.
type Stage string

// Booking stages, in execution order.
const (
	StageThinking         Stage = "thinking"
	StageCheckingSchedule Stage = "checking_schedule"
	StageBookingInterview Stage = "booking_interview"
	StageGeneratingEmail  Stage = "generating_email"
	StageSendingEmail     Stage = "sending_email"
)

// StageStatus is the state of a workflow stage.
type StageStatus string

// Stage statuses.
const (
	StatusInProgress StageStatus = "in_progress"
	StatusCompleted  StageStatus = "completed"
	StatusFailed     StageStatus = "failed"
)

// StageRecord is one entry of the workflow's stage log.
type StageRecord struct {
	Stage   Stage       `json:"stage"`
	Status  StageStatus `json:"status"`
	Message string      `json:"message"`
}

// JobInfo describes the position an interview is for.
type JobInfo struct {
	Title   string `json:"job_title"`
	Company string `json:"company"`
}

// DefaultJobInfo returns placeholder job details.
func DefaultJobInfo() JobInfo {
	return JobInfo{Title: "Software Developer", Company: "Our Company"}
}

// WithDefaults fills empty fields from DefaultJobInfo.
func (j JobInfo) WithDefaults() JobInfo {
	d := DefaultJobInfo()
	if j.Title == "" {
		j.Title = d.Title
	}
	if j.Company == "" {
		j.Company = d.Company
	}
	return j
}

// Reminder is a calendar notification attached to an event.
type Reminder struct {
	Method  string `json:"method"`
	Minutes int64  `json:"minutes"`
}

// DefaultReminders returns the reminders attached to interview events:
// an email one day before and a popup thirty minutes before.
func DefaultReminders() []Reminder {
	return []Reminder{
		{Method: "email", Minutes: 24 * 60},
		{Method: "popup", Minutes: 30},
	}
}

// EventRequest describes a calendar event to create.
type EventRequest struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
	Reminders   []Reminder
}

// BookingResult describes a created calendar event.
type BookingResult struct {
	EventID      string    `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	Start        time.Time `json:"-"`
	End          time.Time `json:"-"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	MeetingLink  string    `json:"meeting_link"`
	CalendarLink string    `json:"calendar_link"`
}

// EmailData is a rendered interview invitation.
type EmailData struct {
	To            string `json:"to"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	CandidateName string `json:"candidate_name"`
	InterviewDate string `json:"interview_date"`
	InterviewTime string `json:"interview_time"`
}

// EmailResult is the outcome of an invitation delivery attempt.
type EmailResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
	ManualRequired bool   `json:"manual_required,omitempty"`
}

// WorkflowResult is the outcome of a booking workflow run.
// Success reflects only whether a calendar event was created.
type WorkflowResult struct {
	Success           bool           `json:"success"`
	Error             string         `json:"error,omitempty"`
	Stages            []StageRecord  `json:"stages"`
	Booking           *BookingResult `json:"booking_result,omitempty"`
	Email             *EmailData     `json:"email_data,omitempty"`
	EmailResult       *EmailResult   `json:"email_result,omitempty"`
	ManualEmailOption bool           `json:"manual_email_option"`
}

// CandidateContact is the subset of candidate data the booking workflow needs.
type CandidateContact struct {
	ID     string `json:"resume_id"`
	Name   string `json:"candidate"`
	Email  string `json:"email"`
	Skills string `json:"skills"`
}

// DisplayName returns the candidate name or a neutral placeholder.
func (c CandidateContact) DisplayName() string {
	if c.Name == "" {
		return "Candidate"
	}
	return c.Name
}

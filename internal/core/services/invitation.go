package services

import (
	"bytes"
	"text/template"
	"time"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
)

// Layouts used in booking results and invitations.
const (
	bookingTimeLayout     = "2006-01-02 15:04"
	invitationDateLayout  = "Monday, January 02, 2006"
	invitationClockLayout = "03:04 PM"
)

var invitationBody = template.Must(template.New("invitation").Parse(
	`Dear {{.Name}},

We are excited to invite you for an interview!

📅 Interview Details:
• Date: {{.Date}}
• Time: {{.Time}}
• Duration: 1 hour
• Type: Interview Discussion
{{if .CalendarLink}}
🔗 Calendar Event: {{.CalendarLink}}
{{end}}
📋 Meeting Confirmation:
Please confirm your attendance.

📝 What to Prepare:
• Updated resume and portfolio
• Questions about the role and company
• Examples of your previous work

If you need to reschedule, please contact us at least 24 hours in advance.

Looking forward to our conversation!

Best regards,
HR Team`))

// RenderInvitation formats the interview invitation for a booking.
// start is the interview start in the interviewer's time zone.
func RenderInvitation(candidate domain.CandidateContact, job domain.JobInfo, start time.Time, calendarLink string) domain.EmailData {
	job = job.WithDefaults()
	name := candidate.DisplayName()

	data := struct {
		Name, Date, Time, CalendarLink string
	}{
		Name:         name,
		Date:         start.Format(invitationDateLayout),
		Time:         start.Format(invitationClockLayout),
		CalendarLink: calendarLink,
	}

	var body bytes.Buffer
	// The template is static and its data is plain strings; Execute cannot fail.
	_ = invitationBody.Execute(&body, data)

	return domain.EmailData{
		To:            candidate.Email,
		Subject:       "Interview Invitation - " + job.Title + " at " + job.Company,
		Body:          body.String(),
		CandidateName: name,
		InterviewDate: data.Date,
		InterviewTime: data.Time,
	}
}

// eventDescription is the calendar event body for an interview.
func eventDescription(candidate domain.CandidateContact, job domain.JobInfo) string {
	return "Interview Details:\n" +
		"• Candidate: " + candidate.DisplayName() + "\n" +
		"• Position: " + job.Title + "\n" +
		"• Company: " + job.Company + "\n" +
		"• Email: " + orNA(candidate.Email) + "\n" +
		"• Skills: " + orNA(candidate.Skills) + "\n\n" +
		"This interview was scheduled via the recruitment assistant."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

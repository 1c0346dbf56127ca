package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driving"
)

var (
	interviewJSON    bool
	scheduleName     string
	scheduleEmail    string
	scheduleJobTitle string
	scheduleCompany  string
	scheduleDate     string
	manualStart      string
	manualCalendar   string
	manualMeeting    string
)

var availabilityCmd = &cobra.Command{
	Use:   "availability [date]",
	Short: "List free interview slots",
	Long: `Lists free interview slots on a day (YYYY-MM-DD). Without a date, the
first day after today with free slots is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAvailability,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [workspace] [resume-id]",
	Short: "Book an interview with a candidate",
	Long: `Finds a free slot, creates the calendar event and emails the invitation.
Contact details are read from the indexed résumé unless --email is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runSchedule,
}

var manualEmailCmd = &cobra.Command{
	Use:   "manual-email",
	Short: "Render the invitation for a booked interview",
	Long:  `Renders the invitation email so it can be sent by hand when delivery failed.`,
	Args:  cobra.NoArgs,
	RunE:  runManualEmail,
}

func init() {
	for _, c := range []*cobra.Command{availabilityCmd, scheduleCmd, manualEmailCmd} {
		c.Flags().BoolVar(&interviewJSON, "json", false, "output as JSON")
	}
	for _, c := range []*cobra.Command{scheduleCmd, manualEmailCmd} {
		c.Flags().StringVar(&scheduleName, "name", "", "candidate name")
		c.Flags().StringVar(&scheduleEmail, "email", "", "candidate email")
		c.Flags().StringVar(&scheduleJobTitle, "job-title", "", "position title")
		c.Flags().StringVar(&scheduleCompany, "company", "", "company name")
	}
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "interview day (YYYY-MM-DD)")
	manualEmailCmd.Flags().StringVar(&manualStart, "start", "", "interview start (YYYY-MM-DD HH:MM)")
	manualEmailCmd.Flags().StringVar(&manualCalendar, "calendar-link", "", "calendar event link")
	manualEmailCmd.Flags().StringVar(&manualMeeting, "meeting-link", "", "video meeting link")

	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(manualEmailCmd)
}

func runAvailability(cmd *cobra.Command, args []string) error {
	if schedulingService == nil {
		return notConfigured("scheduling")
	}
	ctx := commandContext(cmd)

	var (
		av  *domain.Availability
		err error
	)
	if len(args) == 0 {
		av, err = schedulingService.NextAvailable(ctx, time.Now())
	} else {
		day, perr := domain.ParseDay(args[0])
		if perr != nil {
			return perr
		}
		av, err = schedulingService.AvailableSlots(ctx, day)
	}
	if err != nil {
		return fmt.Errorf("availability check failed: %w", err)
	}

	if interviewJSON {
		return printJSON(cmd, av)
	}
	printAvailability(cmd, av)
	return nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	if schedulingService == nil {
		return notConfigured("scheduling")
	}

	day, err := domain.ParseDay(scheduleDate)
	if err != nil {
		return err
	}

	req := driving.ScheduleRequest{
		WorkspaceID: args[0],
		CandidateID: args[1],
		Job:         domain.JobInfo{Title: scheduleJobTitle, Company: scheduleCompany},
		Date:        day,
	}
	if scheduleName != "" || scheduleEmail != "" {
		req.Candidate = &domain.CandidateContact{ID: args[1], Name: scheduleName, Email: scheduleEmail}
	}

	result, err := schedulingService.Schedule(commandContext(cmd), req)
	if err != nil {
		return fmt.Errorf("scheduling failed: %w", err)
	}

	if interviewJSON {
		return printJSON(cmd, result)
	}
	printWorkflow(cmd, result)
	if !result.Success {
		return fmt.Errorf("interview not booked: %s", result.Error)
	}
	return nil
}

func runManualEmail(cmd *cobra.Command, _ []string) error {
	if schedulingService == nil {
		return notConfigured("scheduling")
	}
	if scheduleEmail == "" || manualStart == "" {
		return fmt.Errorf("--email and --start are required")
	}

	email, err := schedulingService.ManualEmail(
		commandContext(cmd),
		domain.CandidateContact{Name: scheduleName, Email: scheduleEmail},
		domain.JobInfo{Title: scheduleJobTitle, Company: scheduleCompany},
		domain.BookingResult{StartTime: manualStart, CalendarLink: manualCalendar, MeetingLink: manualMeeting},
	)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	if interviewJSON {
		return printJSON(cmd, email)
	}
	cmd.Printf("To: %s\n", email.To)
	cmd.Printf("Subject: %s\n\n", email.Subject)
	cmd.Println(email.Body)
	return nil
}

func printAvailability(cmd *cobra.Command, av *domain.Availability) {
	if len(av.Slots) == 0 {
		cmd.Printf("No free slots on %s.\n", av.Date)
		return
	}
	cmd.Printf("Free slots on %s:\n", av.Date)
	for i, s := range av.Slots {
		cmd.Printf("  %d. %s - %s\n", i+1, s.StartLabel, s.EndLabel)
	}
	cmd.Println()
}

func printWorkflow(cmd *cobra.Command, r *domain.WorkflowResult) {
	for _, s := range r.Stages {
		cmd.Printf("  [%s] %s: %s\n", s.Status, s.Stage, s.Message)
	}
	cmd.Println()

	if r.Booking != nil {
		cmd.Printf("Booked: %s\n", r.Booking.EventTitle)
		cmd.Printf("  When: %s - %s\n", r.Booking.StartTime, r.Booking.EndTime)
		if r.Booking.MeetingLink != "" {
			cmd.Printf("  Meeting: %s\n", r.Booking.MeetingLink)
		}
		if r.Booking.CalendarLink != "" {
			cmd.Printf("  Calendar: %s\n", r.Booking.CalendarLink)
		}
	}
	if r.EmailResult != nil && !r.EmailResult.Success {
		cmd.Printf("Invitation not sent: %s\n", r.EmailResult.Error)
		if r.ManualEmailOption {
			cmd.Println("Run 'screener manual-email' to render it for sending by hand.")
		}
	}
}

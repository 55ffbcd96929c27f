package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"timesheet/internal/domain"
	"timesheet/internal/errors"
	"timesheet/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// ReportCommand prints a user's day, month, project or project-list report.
type ReportCommand struct {
	app *App
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app}
}

// Execute runs the report named by args[0] for the user named by args[1].
//
//	day <username> [YYYY-MM-DD]
//	month <username> [YYYY-MM]
//	project <username> <project name>
//	projects <username>
func (c *ReportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("args", args, "expected a report kind and a username")
	}

	kind, username, rest := args[0], args[1], args[2:]

	user, err := c.app.services.UserService.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	today := domain.DateOf(timeNow().In(user.Location()))

	switch kind {
	case "day":
		date := today
		if len(rest) > 0 {
			if date, err = domain.ParseDate(rest[0]); err != nil {
				return errors.NewInvalidInputError("date", rest[0], "expected YYYY-MM-DD")
			}
		}
		return c.day(ctx, user.ID, date)
	case "month":
		month := today.CalendarMonth()
		if len(rest) > 0 {
			if month, err = domain.ParseMonth(rest[0]); err != nil {
				return errors.NewInvalidInputError("month", rest[0], "expected YYYY-MM")
			}
		}
		return c.month(ctx, user.ID, month)
	case "project":
		name := strings.TrimSpace(strings.Join(rest, " "))
		if name == "" {
			return errors.NewEmptyProjectNameError()
		}
		return c.project(ctx, user.ID, name)
	case "projects":
		return c.projects(ctx, user.ID)
	default:
		return errors.NewInvalidInputError("report", kind, "expected day, month, project or projects")
	}
}

func (c *ReportCommand) day(ctx context.Context, userID int64, date domain.Date) error {
	bucket, err := c.app.services.ReportingService.SessionsForDay(ctx, userID, date)
	if err != nil {
		return err
	}
	printDay(c.app.out, *bucket)
	return nil
}

func (c *ReportCommand) month(ctx context.Context, userID int64, m domain.Month) error {
	report, err := c.app.services.ReportingService.SessionsForMonth(ctx, userID, m.Year, m.Month)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "%s: %s\n", report.Month, report.Total)
	for _, bucket := range report.Days {
		if len(bucket.Sessions) == 0 {
			continue
		}
		printDay(c.app.out, bucket)
	}
	if len(report.Outside) > 0 {
		fmt.Fprintf(c.app.out, "%d session(s) recorded in another zone fall outside %s\n", len(report.Outside), report.Month)
	}
	return nil
}

func (c *ReportCommand) project(ctx context.Context, userID int64, name string) error {
	stats, err := c.app.services.ProjectService.ListOrderedProjects(ctx, userID)
	if err != nil {
		return err
	}

	var projectID int64
	for _, p := range stats {
		if p.Name == name {
			projectID = p.ID
			break
		}
	}
	if projectID == 0 {
		return errors.NewNotFoundError("project", name)
	}

	report, err := c.app.services.ReportingService.SessionsForProject(ctx, userID, projectID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.app.out, "%s: %s in %d session(s)\n", report.Project.Name, report.Total, report.SessionCount)
	for _, bucket := range report.Days {
		printDay(c.app.out, bucket)
	}
	return nil
}

func (c *ReportCommand) projects(ctx context.Context, userID int64) error {
	stats, err := c.app.services.ProjectService.ListOrderedProjects(ctx, userID)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Fprintln(c.app.out, "No projects found")
		return nil
	}
	for _, p := range stats {
		fmt.Fprintf(c.app.out, "%s: %s\n", p.Name, p.Duration())
	}
	return nil
}

// printDay prints a bucket header followed by one line per session:
// start - end (duration): project
func printDay(w io.Writer, bucket services.DayBucket) {
	fmt.Fprintf(w, "%s: %s\n", bucket.Date, bucket.Total)
	for _, s := range bucket.Sessions {
		start, end := s.LocalStart(), s.LocalEnd()
		endStr := end.Format("15:04")
		if domain.DateOf(end) != domain.DateOf(start) {
			endStr = end.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %s - %s (%s): %s\n", start.Format("15:04"), endStr, s.Duration(), s.ProjectName)
	}
}

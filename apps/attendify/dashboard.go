package main

import (
	"fmt"
	"time"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

func (cli *commandLine) dashboard(args []string) error {
	fs := cli.newFlagSet("dashboard")
	date := fs.String("date", "", "Show the dashboard as of this day (YYYY-MM-DD).")
	if err := parse(fs, args); err != nil {
		return err
	}

	now := nowFunc()
	if *date != "" {
		d, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "must be a date formatted as YYYY-MM-DD"})
		}
		now = d
	}

	dash := cli.svc.Dashboard(now)
	fmt.Fprintf(cli.out, "Welcome back, %s!\n", dash.UserName)
	fmt.Fprintln(cli.out, dash.Date.Format("Monday, January 2"))
	fmt.Fprintln(cli.out)

	sum := dash.Summary
	fmt.Fprintf(cli.out, "Overall %s %s  attended %d of %d classes, missed %d\n",
		formatPercent(sum.Percentage), bar(sum.Percentage, barWidth()), sum.Attended, sum.Conducted, sum.Missed)
	goal := formatTarget(cli.svc.Settings().GlobalTarget)
	if sum.OnTrack {
		fmt.Fprintf(cli.out, "You're on track for your %s goal. Keep it up!\n", goal)
	} else {
		fmt.Fprintf(cli.out, "You're below your %s goal. Aim for the next few classes!\n", goal)
	}
	fmt.Fprintln(cli.out)

	fmt.Fprintf(cli.out, "Today's classes (%s)\n", dash.Today)
	if len(dash.TodayClasses) == 0 {
		fmt.Fprintln(cli.out, "  No classes scheduled for today.")
	} else if err := cli.printClasses(dash.TodayClasses, "  "); err != nil {
		return err
	}
	fmt.Fprintln(cli.out)

	return cli.printStatuses(dash.Subjects)
}

func (cli *commandLine) project(args []string) error {
	fs := cli.newFlagSet("project")
	attended := fs.Int("attended", 0, "Classes attended so far.")
	total := fs.Int("total", 0, "Classes held so far.")
	target := fs.Float64("target", cli.svc.Settings().GlobalTarget, "Target attendance percentage.")
	if err := parse(fs, args); err != nil {
		return err
	}

	var subj tracker.Subject
	if fs.NArg() > 0 {
		found, err := cli.svc.FindSubject(fs.Arg(0))
		if err != nil {
			return err
		}
		subj = found
		if setFlags(fs)["target"] {
			subj.TargetAttendance = *target
		}
	} else {
		if *attended < 0 || *total < 0 || *attended > *total {
			return core.NewValidationError(nil, core.FieldError{Field: "attended", Error: "attended must be between 0 and total"})
		}
		subj = tracker.Subject{Name: "Projection", Attended: *attended, Total: *total, TargetAttendance: *target}
	}
	if subj.TargetAttendance < 0 || subj.TargetAttendance > 100 {
		return core.NewValidationError(nil, core.FieldError{Field: "target", Error: "must be between 0 and 100"})
	}

	st := tracker.StatusOf(subj)
	fmt.Fprintf(cli.out, "%s: %d/%d attended (%s), target %s\n",
		st.Name, st.Attended, st.Total, formatPercent(st.Percentage), formatTarget(st.TargetAttendance))
	switch {
	case st.Total == 0:
		fmt.Fprintln(cli.out, "No classes held yet, nothing to project.")
	case st.Unattainable:
		fmt.Fprintln(cli.out, "A class was missed: the target can no longer be reached.")
	case st.BelowTarget:
		fmt.Fprintf(cli.out, "Must attend the next %d classes to get back on target.\n", st.MustAttend)
	case st.SkipUnbounded:
		fmt.Fprintln(cli.out, "Any number of classes can be skipped.")
	default:
		fmt.Fprintf(cli.out, "Can skip %d more classes and stay on target.\n", st.CanSkip)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// barWidth scales progress bars with the terminal.
func barWidth() int {
	w := termWidthFunc() / 5
	switch {
	case w < 10:
		return 10
	case w > 30:
		return 30
	default:
		return w
	}
}

// bar renders percent (0-100) as a fixed width gauge.
func bar(percent float64, width int) string {
	filled := int(percent/100*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

func formatTarget(t float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", t), "0"), ".") + "%"
}

func canSkipText(st tracker.SubjectStatus) string {
	if st.SkipUnbounded {
		return "any"
	}
	return fmt.Sprint(st.CanSkip)
}

func mustAttendText(st tracker.SubjectStatus) string {
	if st.Unattainable {
		return "unattainable"
	}
	return fmt.Sprint(st.MustAttend)
}

func roomText(e tracker.TimetableEntry) string {
	if e.Room.Valid {
		return e.Room.String
	}
	return "-"
}

func (cli *commandLine) printStatuses(statuses []tracker.SubjectStatus) error {
	if len(statuses) == 0 {
		fmt.Fprintln(cli.out, "No subjects yet. Add one with: attendify subject-add -name NAME")
		return nil
	}

	width := barWidth()
	tw := newTabWriter(cli.out)
	fmt.Fprintln(tw, "ID\tSUBJECT\tATTENDED\t\t\tTARGET\tCAN SKIP\tMUST ATTEND")
	for _, st := range statuses {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\t%s\t%s\t%s\n",
			st.ID, st.Name, st.Attended, st.Total,
			formatPercent(st.Percentage), bar(st.Percentage, width),
			formatTarget(st.TargetAttendance), canSkipText(st), mustAttendText(st),
		)
	}
	return tw.Flush()
}

func (cli *commandLine) printClasses(classes []tracker.ScheduledClass, indent string) error {
	tw := newTabWriter(cli.out)
	for _, c := range classes {
		fmt.Fprintf(tw, "%s%s-%s\t%s\t%s\t%s\n",
			indent, c.Entry.StartTime, c.Entry.EndTime, c.Subject.Name, roomText(c.Entry), c.Entry.ID)
	}
	return tw.Flush()
}

package main

import (
	"context"
	"fmt"

	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

func (cli *commandLine) timetable(args []string) error {
	if err := parse(cli.newFlagSet("timetable"), args); err != nil {
		return err
	}

	for i, day := range cli.svc.Week() {
		if i > 0 {
			fmt.Fprintln(cli.out)
		}
		fmt.Fprintln(cli.out, day.Day)
		if len(day.Classes) == 0 {
			fmt.Fprintln(cli.out, "  No classes")
			continue
		}
		if err := cli.printClasses(day.Classes, "  "); err != nil {
			return err
		}
	}
	return nil
}

func (cli *commandLine) addClass(args []string) error {
	fs := cli.newFlagSet("class-add")
	subject := fs.String("subject", "", "Subject id or name.")
	day := fs.String("day", "", "Day of the week, e.g. Monday.")
	start := fs.String("start", "", "Start time (HH:MM).")
	end := fs.String("end", "", "End time (HH:MM).")
	room := fs.String("room", "", "Room (optional).")
	if err := parse(fs, args); err != nil {
		return err
	}

	subjectID := *subject
	if subjectID != "" {
		subj, err := cli.svc.FindSubject(subjectID)
		if err != nil {
			return err
		}
		subjectID = subj.ID
	}

	entry, err := cli.svc.AddEntry(context.Background(), tracker.NewEntry{
		SubjectID: subjectID,
		Day:       tracker.Day(*day),
		StartTime: *start,
		EndTime:   *end,
		Room:      *room,
	})
	if err != nil {
		return err
	}
	subj, _ := cli.svc.ResolveSubject(entry.SubjectID)
	fmt.Fprintf(cli.out, "Added %s on %s %s-%s (id %s).\n", subj.Name, entry.Day, entry.StartTime, entry.EndTime, entry.ID)
	return nil
}

func (cli *commandLine) removeClass(args []string) error {
	fs := cli.newFlagSet("class-rm")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errHelp
	}

	if err := cli.svc.DeleteEntry(context.Background(), fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Removed class.")
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

func (cli *commandLine) subjects(args []string) error {
	if err := parse(cli.newFlagSet("subjects"), args); err != nil {
		return err
	}
	return cli.printStatuses(cli.svc.Statuses())
}

func (cli *commandLine) addSubject(args []string) error {
	fs := cli.newFlagSet("subject-add")
	name := fs.String("name", "", "The subject's name.")
	target := fs.Float64("target", tracker.DefaultTarget, "Target attendance percentage.")
	attended := fs.Int("attended", 0, "Classes already attended.")
	total := fs.Int("total", 0, "Classes already held.")
	color := fs.String("color", "", "Display color, one of the bg-*-500 palette.")
	if err := parse(fs, args); err != nil {
		return err
	}

	subj, err := cli.svc.AddSubject(context.Background(), tracker.NewSubject{
		Name:             *name,
		TargetAttendance: target,
		Attended:         *attended,
		Total:            *total,
		Color:            *color,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Added %s (id %s).\n", subj.Name, subj.ID)
	return nil
}

func (cli *commandLine) editSubject(args []string) error {
	fs := cli.newFlagSet("subject-edit")
	name := fs.String("name", "", "New name.")
	target := fs.Float64("target", 0, "New target attendance percentage.")
	attended := fs.Int("attended", 0, "Corrected number of classes attended.")
	total := fs.Int("total", 0, "Corrected number of classes held.")
	color := fs.String("color", "", "New display color.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errHelp
	}

	subj, err := cli.svc.FindSubject(fs.Arg(0))
	if err != nil {
		return err
	}

	set := setFlags(fs)
	data := tracker.UpdateSubject{Name: *name, Color: *color}
	if set["target"] {
		data.TargetAttendance = target
	}
	if set["attended"] {
		data.Attended = attended
	}
	if set["total"] {
		data.Total = total
	}

	subj, err = cli.svc.UpdateSubject(context.Background(), subj.ID, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Updated %s.\n", subj.Name)
	return cli.printStatuses([]tracker.SubjectStatus{tracker.StatusOf(subj)})
}

func (cli *commandLine) removeSubject(args []string) error {
	fs := cli.newFlagSet("subject-rm")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errHelp
	}

	subj, err := cli.svc.FindSubject(fs.Arg(0))
	if err != nil {
		return err
	}
	if err = cli.svc.DeleteSubject(context.Background(), subj.ID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Deleted %s.\n", subj.Name)
	return nil
}

func (cli *commandLine) mark(args []string) error {
	fs := cli.newFlagSet("mark")
	absent := fs.Bool("absent", false, "Record the class as missed.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errHelp
	}

	// resolve everything first so a typo records nothing
	subjects := make([]tracker.Subject, 0, fs.NArg())
	for _, query := range fs.Args() {
		subj, err := cli.svc.FindSubject(query)
		if err != nil {
			return err
		}
		subjects = append(subjects, subj)
	}

	statuses := make([]tracker.SubjectStatus, 0, len(subjects))
	for _, subj := range subjects {
		updated, found, err := cli.svc.MarkAttendance(context.Background(), subj.ID, !*absent)
		if err != nil {
			return err
		}
		if found {
			statuses = append(statuses, tracker.StatusOf(updated))
		}
	}

	verb := "present"
	if *absent {
		verb = "absent"
	}
	fmt.Fprintf(cli.out, "Marked %s.\n", verb)
	return cli.printStatuses(statuses)
}

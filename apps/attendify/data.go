package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

var qrWriteFileFunc = qrcode.WriteFile // mockable

func (cli *commandLine) settings(args []string) error {
	fs := cli.newFlagSet("settings")
	name := fs.String("name", "", "Your name, shown on the dashboard.")
	target := fs.Float64("target", 0, "Overall attendance goal in percent.")
	if err := parse(fs, args); err != nil {
		return err
	}

	settings := cli.svc.Settings()
	if set := setFlags(fs); len(set) > 0 {
		data := tracker.UpdateSettings{UserName: *name}
		if set["target"] {
			data.GlobalTarget = target
		}
		var err error
		if settings, err = cli.svc.UpdateSettings(context.Background(), data); err != nil {
			return err
		}
	}

	tw := newTabWriter(cli.out)
	fmt.Fprintf(tw, "Name\t%s\n", settings.UserName)
	fmt.Fprintf(tw, "Goal\t%s\n", formatTarget(settings.GlobalTarget))
	fmt.Fprintf(tw, "Storage\t%s %s\n", cli.conf.Storage.Engine, cli.conf.Storage.Path)
	return tw.Flush()
}

func (cli *commandLine) export(args []string) error {
	fs := cli.newFlagSet("export")
	output := fs.String("o", "", "Write to this file instead of stdout.")
	qrPath := fs.String("qr", "", "Also write the data as a QR code PNG to this file.")
	if err := parse(fs, args); err != nil {
		return err
	}

	data := cli.svc.Data()
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding export")
	}

	if *qrPath != "" {
		compact, err := tracker.Encode(data)
		if err != nil {
			return err
		}
		if err = qrWriteFileFunc(compact, qrcode.Low, 512, *qrPath); err != nil {
			return errors.Wrap(err, "writing QR code")
		}
		fmt.Fprintf(cli.out, "QR code written to %s.\n", *qrPath)
	}

	if *output != "" {
		if err = writeFileFunc(*output, append(b, '\n'), 0o600); err != nil {
			return errors.Wrap(err, "writing export")
		}
		fmt.Fprintf(cli.out, "Exported to %s.\n", *output)
		return nil
	}
	if *qrPath == "" {
		fmt.Fprintln(cli.out, string(b))
	}
	return nil
}

func (cli *commandLine) importData(args []string) error {
	fs := cli.newFlagSet("import")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errHelp
	}

	var raw []byte
	var err error
	if path := fs.Arg(0); path == "-" {
		raw, err = io.ReadAll(cli.in)
	} else {
		raw, err = readFileFunc(path)
	}
	if err != nil {
		return errors.Wrap(err, "reading import")
	}

	data, err := tracker.Decode(string(raw))
	if err != nil {
		return err
	}
	if err = cli.svc.Replace(context.Background(), data); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Imported %d subjects and %d classes.\n", len(data.Subjects), len(data.Timetable))
	return nil
}

func (cli *commandLine) reset(args []string) error {
	fs := cli.newFlagSet("reset")
	yes := fs.Bool("yes", false, "Do not ask for confirmation.")
	if err := parse(fs, args); err != nil {
		return err
	}

	if !*yes {
		fmt.Fprint(cli.out, "This replaces all subjects, classes and settings with the starter data. Continue? [y/N] ")
		answer, _ := bufio.NewReader(cli.in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cli.out, "Aborted.")
			return nil
		}
	}

	if err := cli.svc.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Data reset.")
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"golang.org/x/term"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

var (
	nowFunc       = time.Now     // mockable
	termWidthFunc = stdoutWidth  // mockable
	readFileFunc  = os.ReadFile  // mockable
	writeFileFunc = os.WriteFile // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf       *core.Config
	svc        *tracker.Service
	store      core.KVStore
	translator ut.Translator
	out        io.Writer
	in         io.Reader
	serve      func(addr string) error
}

func stdoutWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

var commands = []struct{ name, usage string }{
	{"dashboard", "[-date YYYY-MM-DD] - overview of today and every subject (default)"},
	{"subjects", "- list subjects with what can be skipped or must be attended"},
	{"subject-add", "-name NAME [-target 75] [-attended N -total N] [-color bg-blue-500] - add a subject"},
	{"subject-edit", "[-name NAME] [-target T] [-attended N] [-total N] [-color C] SUBJECT - edit a subject"},
	{"subject-rm", "SUBJECT - delete a subject (its classes stay in the timetable)"},
	{"mark", "[-absent] SUBJECT... - record a class as attended (or missed)"},
	{"timetable", "- show the weekly timetable"},
	{"class-add", "-subject SUBJECT -day DAY -start HH:MM -end HH:MM [-room ROOM] - add a class"},
	{"class-rm", "ID - remove a class from the timetable"},
	{"settings", "[-name NAME] [-target T] - show or change settings"},
	{"project", "SUBJECT | -attended N -total N [-target T] - project skips and recovery"},
	{"export", "[-o FILE] [-qr FILE.png] - print or save all data as JSON"},
	{"import", "FILE|- - replace all data with an export"},
	{"reset", "[-yes] - restore the starter data"},
	{"migrate", "COMMAND [ARGS] - run sqlite schema migrations (goose commands)"},
	{"serve", "[-addr HOST:PORT] - serve the local JSON API"},
	{"help", "- show this help"},
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: attendify COMMAND [ARGS]")
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, "SUBJECT is a subject id or name.")
	fmt.Fprintln(cli.out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(cli.out, "  %s %s\n", c.name, c.usage)
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses args into fs, mapping -h to errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// setFlags reports which flags were given explicitly.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		return cli.dashboard(nil)
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "dashboard":
		return cli.dashboard(rest)
	case "subjects":
		return cli.subjects(rest)
	case "subject-add":
		return cli.addSubject(rest)
	case "subject-edit":
		return cli.editSubject(rest)
	case "subject-rm":
		return cli.removeSubject(rest)
	case "mark":
		return cli.mark(rest)
	case "timetable":
		return cli.timetable(rest)
	case "class-add":
		return cli.addClass(rest)
	case "class-rm":
		return cli.removeClass(rest)
	case "settings":
		return cli.settings(rest)
	case "project":
		return cli.project(rest)
	case "export":
		return cli.export(rest)
	case "import":
		return cli.importData(rest)
	case "reset":
		return cli.reset(rest)
	case "migrate":
		return cli.migrate(rest)
	case "serve":
		return cli.runServer(rest)
	case "help", "-h", "-help", "--help":
		cli.printUsage()
		return errHelp
	default:
		fmt.Fprintf(cli.out, "unknown command %q\n\n", cmd)
		cli.printUsage()
		return errHelp
	}
}

// formatErr renders validation failures field by field.
func (cli *commandLine) formatErr(err error) string {
	fields, ok := core.FieldErrors(err, cli.translator)
	if !ok {
		return err.Error()
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("  %s: %s", name, fields[name])
	}
	return "invalid input:\n" + strings.Join(lines, "\n")
}

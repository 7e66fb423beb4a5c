package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
	sqlxdb "github.com/Allen-Davis-M/Attendify/storage/database/sqlx"
	"github.com/Allen-Davis-M/Attendify/testutil"
)

type cliTest struct {
	name       string
	args       []string // without program name
	stdin      string
	wantErr    error
	wantErrStr string
	wantOut    []string // substrings of the output
}

func setup(t *testing.T) (*commandLine, *bytes.Buffer, *testutil.Env) {
	env := testutil.NewEnv(t)
	out := &bytes.Buffer{}

	// 2024-01-08 is a Monday
	nowFunc = func() time.Time { return time.Date(2024, 1, 8, 8, 0, 0, 0, time.Local) }
	termWidthFunc = func() int { return 100 }
	t.Cleanup(func() {
		nowFunc = time.Now
		termWidthFunc = stdoutWidth
	})

	conf := &core.Config{
		Storage: core.StorageConfig{Engine: core.EngineMemory, Key: core.DefaultStorageKey},
		Server:  core.ServerConfig{Host: "127.0.0.1:8017"},
	}
	return &commandLine{
		conf:       conf,
		svc:        env.Svc,
		store:      env.Store,
		translator: env.Translator,
		out:        out,
		in:         strings.NewReader(""),
		serve:      func(string) error { return nil },
	}, out, env
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"attendify"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			cli.in = strings.NewReader(tt.stdin)

			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, errors.Cause(err), "cli.run() error = %v", err)
			case tt.wantErrStr != "":
				if assert.Error(t, err) {
					assert.Equal(t, tt.wantErrStr, cli.formatErr(err))
				}
			default:
				require.NoError(t, err, "cli.run() output: %s", out.String())
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func Test_commandLine_help(t *testing.T) {
	cli, out, _ := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "help", args: []string{"help"}, wantErr: errHelp, wantOut: []string{"Usage: attendify", "subject-add"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: []string{`unknown command "lol"`}},
		{name: "flag help", args: []string{"mark", "-h"}, wantErr: errHelp},
		{name: "missing args", args: []string{"subject-rm"}, wantErr: errHelp},
		{name: "bad flag", args: []string{"subjects", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
	})
}

func Test_commandLine_dashboard(t *testing.T) {
	cli, out, _ := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{
			name: "default command", args: nil,
			wantOut: []string{
				"Welcome back, Alex!",
				"Monday, January 8",
				"attended 22 of 30 classes, missed 8",
				"below your 75% goal",
				"Today's classes (Monday)",
				"09:00-10:30  Mathematics  Room 302",
				"Physics",
			},
		},
		{
			name: "weekend shows monday", args: []string{"dashboard", "-date", "2024-01-13"},
			wantOut: []string{"Saturday, January 13", "Today's classes (Monday)", "Mathematics"},
		},
		{
			name: "tuesday", args: []string{"dashboard", "-date", "2024-01-09"},
			wantOut: []string{"Today's classes (Tuesday)", "11:00-12:30  Physics"},
		},
		{
			name: "no classes", args: []string{"dashboard", "-date", "2024-01-10"},
			wantOut: []string{"No classes scheduled for today."},
		},
		{
			name: "bad date", args: []string{"dashboard", "-date", "tomorrow"},
			wantErrStr: "invalid input:\n  date: must be a date formatted as YYYY-MM-DD",
		},
	})
}

func Test_commandLine_subjects(t *testing.T) {
	cli, out, env := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "list", args: []string{"subjects"}, wantOut: []string{"ID", "CAN SKIP", "Mathematics", "12/15", "80%", "Physics", "10/15"}},
		{name: "add", args: []string{"subject-add", "-name", "Chemistry", "-target", "80"}, wantOut: []string{"Added Chemistry"}},
		{
			name: "add blank", args: []string{"subject-add", "-name", " "},
			wantErrStr: "invalid input:\n  name: this field cannot be blank",
		},
		{
			name: "add bad counts", args: []string{"subject-add", "-name", "Art", "-attended", "3", "-total", "2"},
			wantErrStr: "invalid input:\n  attended: attended cannot exceed total",
		},
		{name: "edit by name", args: []string{"subject-edit", "-target", "60", "physics"}, wantOut: []string{"Updated Physics", "60%"}},
		{
			name: "edit bad total", args: []string{"subject-edit", "-total", "3", "Mathematics"},
			wantErrStr: "invalid input:\n  attended: attended cannot exceed total",
		},
		{name: "edit unknown", args: []string{"subject-edit", "-name", "X", "Biology"}, wantErr: tracker.ErrSubjectNotFound},
		{name: "remove", args: []string{"subject-rm", "Chemistry"}, wantOut: []string{"Deleted Chemistry"}},
		{name: "remove again", args: []string{"subject-rm", "Chemistry"}, wantErr: tracker.ErrSubjectNotFound},
	})

	subjects := env.Svc.Subjects()
	require.Len(t, subjects, 2)
	assert.Equal(t, 60.0, subjects[1].TargetAttendance)
	assert.Equal(t, 15, subjects[0].Total)
}

func Test_commandLine_mark(t *testing.T) {
	cli, out, env := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "present", args: []string{"mark", "Mathematics"}, wantOut: []string{"Marked present", "13/16"}},
		{name: "absent by id", args: []string{"mark", "-absent", "2"}, wantOut: []string{"Marked absent", "10/16"}},
		{name: "several", args: []string{"mark", "1", "physics"}, wantOut: []string{"14/17", "11/17"}},
		{
			name: "typo gets a suggestion", args: []string{"mark", "Maths", "Phisics"},
			wantErrStr: `"Maths" (did you mean "Mathematics"?): subject not found`,
		},
		{name: "nothing to mark", args: []string{"mark"}, wantErr: errHelp},
	})

	// the failed call recorded nothing
	maths, err := env.Svc.Subject("1")
	require.NoError(t, err)
	assert.Equal(t, 14, maths.Attended)
	assert.Equal(t, 17, maths.Total)
}

func Test_commandLine_timetable(t *testing.T) {
	cli, out, env := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{
			name: "week", args: []string{"timetable"},
			wantOut: []string{"Monday\n  09:00-10:30  Mathematics  Room 302  t1", "Wednesday\n  No classes", "Friday"},
		},
		{
			name: "add", args: []string{"class-add", "-subject", "physics", "-day", "saturday", "-start", "10:00", "-end", "11:00"},
			wantOut: []string{"Added Physics on Saturday 10:00-11:00"},
		},
		{name: "weekend shows up", args: []string{"timetable"}, wantOut: []string{"Saturday\n  10:00-11:00  Physics  -"}},
		{
			name: "add without subject", args: []string{"class-add", "-day", "Monday", "-start", "10:00", "-end", "11:00"},
			wantErrStr: "invalid input:\n  subjectId: this field is required",
		},
		{
			name: "add backwards", args: []string{"class-add", "-subject", "1", "-day", "Monday", "-start", "10:00", "-end", "09:00"},
			wantErrStr: "invalid input:\n  endTime: end time must be after start time",
		},
		{name: "remove unknown", args: []string{"class-rm", "nope"}, wantErr: tracker.ErrEntryNotFound},
		{name: "remove", args: []string{"class-rm", "t2"}, wantOut: []string{"Removed class."}},
		{name: "delete subject", args: []string{"subject-rm", "1"}},
		{name: "dangling class", args: []string{"timetable"}, wantOut: []string{"09:00-10:30  Unknown"}},
	})

	assert.Len(t, env.Svc.Timetable(), 2)
}

func Test_commandLine_project(t *testing.T) {
	cli, out, _ := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "subject above target", args: []string{"project", "Mathematics"}, wantOut: []string{"Can skip 1 more classes"}},
		{name: "subject below target", args: []string{"project", "Physics"}, wantOut: []string{"Must attend the next 5 classes"}},
		{name: "override target", args: []string{"project", "-target", "50", "Physics"}, wantOut: []string{"target 50%", "Can skip 5 more"}},
		{name: "counts", args: []string{"project", "-attended", "3", "-total", "4"}, wantOut: []string{"3/4 attended (75%)", "Can skip 0 more"}},
		{name: "nothing held", args: []string{"project"}, wantOut: []string{"No classes held yet"}},
		{name: "unattainable", args: []string{"project", "-attended", "4", "-total", "5", "-target", "100"}, wantOut: []string{"can no longer be reached"}},
		{name: "zero target", args: []string{"project", "-attended", "0", "-total", "5", "-target", "0"}, wantOut: []string{"Any number of classes"}},
		{
			name: "bad counts", args: []string{"project", "-attended", "5", "-total", "4"},
			wantErrStr: "invalid input:\n  attended: attended must be between 0 and total",
		},
		{
			name: "bad target", args: []string{"project", "-attended", "1", "-total", "4", "-target", "120"},
			wantErrStr: "invalid input:\n  target: must be between 0 and 100",
		},
	})
}

func Test_commandLine_settings(t *testing.T) {
	cli, out, env := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "show", args: []string{"settings"}, wantOut: []string{"Name     Alex", "Goal     75%", "memory"}},
		{name: "change", args: []string{"settings", "-name", "Sam", "-target", "82.5"}, wantOut: []string{"Sam", "82.5%"}},
		{
			name: "out of range", args: []string{"settings", "-target", "-1"},
			wantErrStr: "invalid input:\n  globalTarget: globalTarget must be 0 or greater",
		},
	})

	assert.Equal(t, tracker.Settings{GlobalTarget: 82.5, UserName: "Sam"}, env.Svc.Settings())
}

func Test_commandLine_exportImport(t *testing.T) {
	cli, out, env := setup(t)
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "export.json")

	var qrContent, qrPath string
	qrWriteFileFunc = func(content string, _ qrcode.RecoveryLevel, _ int, filename string) error {
		qrContent, qrPath = content, filename
		return nil
	}
	defer func() { qrWriteFileFunc = qrcode.WriteFile }()

	runCLITests(t, cli, out, []cliTest{
		{name: "print", args: []string{"export"}, wantOut: []string{`"userName": "Alex"`, `"room": "Room 302"`}},
		{name: "to file", args: []string{"export", "-o", exportPath}, wantOut: []string{"Exported to"}},
		{name: "qr", args: []string{"export", "-qr", filepath.Join(dir, "data.png")}, wantOut: []string{"QR code written"}},
		{name: "change", args: []string{"mark", "1"}},
		{name: "reset aborted", args: []string{"reset"}, stdin: "n\n", wantOut: []string{"Continue? [y/N]", "Aborted."}},
		{name: "import file", args: []string{"import", exportPath}, wantOut: []string{"Imported 2 subjects and 2 classes."}},
		{
			name: "import stdin", args: []string{"import", "-"},
			stdin:   `{"subjects":[{"id":"x","name":"Art","targetAttendance":50,"attended":1,"total":1,"color":"bg-pink-500"}],"timetable":[],"settings":{"globalTarget":50,"userName":"Kim"}}`,
			wantOut: []string{"Imported 1 subjects and 0 classes."},
		},
		{
			name: "import malformed", args: []string{"import", "-"},
			stdin:      `{"subjects":[{"id":"x","name":"Art","attended":2,"total":1}]}`,
			wantErrStr: "invalid input:\n  subjects[0].attended: attended cannot exceed total",
		},
		{name: "import without file", args: []string{"import"}, wantErr: errHelp},
	})

	err := cli.run([]string{"attendify", "import", filepath.Join(dir, "nope.json")})
	assert.True(t, os.IsNotExist(errors.Cause(err)), "cli.run() error = %v", err)

	assert.Equal(t, filepath.Join(dir, "data.png"), qrPath)
	decoded, err := tracker.Decode(qrContent)
	require.NoError(t, err)
	assert.Equal(t, tracker.StarterData(), decoded)

	assert.Equal(t, "Kim", env.Svc.Settings().UserName)

	runCLITests(t, cli, out, []cliTest{
		{name: "reset confirmed", args: []string{"reset"}, stdin: "y\n", wantOut: []string{"Data reset."}},
	})
	assert.Equal(t, tracker.StarterData(), env.Svc.Data())
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out, _ := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", args: []string{"migrate"}, wantErr: errHelp},
		{name: "wrong engine", args: []string{"migrate", "status"}, wantErrStr: `migrations only apply to the sqlite engine, not "memory"`},
	})

	store, err := sqlxdb.Open(filepath.Join(t.TempDir(), "attendify.sqlite"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	cli.store = store
	cli.conf.Storage.Engine = core.EngineSQLite

	var gotCmd string
	var gotArgs []string
	migrateRunFunc = func(command string, _ *sql.DB, args ...string) error {
		gotCmd, gotArgs = command, args
		return nil
	}
	defer func() { migrateRunFunc = sqlxdb.MigrateRun }()

	runCLITests(t, cli, out, []cliTest{
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
	})
	assert.Equal(t, "up-to", gotCmd)
	assert.Equal(t, []string{"1"}, gotArgs)
}

func Test_commandLine_serve(t *testing.T) {
	cli, out, _ := setup(t)

	var addr string
	cli.serve = func(a string) error {
		addr = a
		return nil
	}

	runCLITests(t, cli, out, []cliTest{{name: "default addr", args: []string{"serve"}}})
	assert.Equal(t, "127.0.0.1:8017", addr)

	runCLITests(t, cli, out, []cliTest{{name: "custom addr", args: []string{"serve", "-addr", "127.0.0.1:9000"}}})
	assert.Equal(t, "127.0.0.1:9000", addr)
}

func Test_bar(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "[..........]"},
		{50, "[#####.....]"},
		{100, "[##########]"},
		{140, "[##########]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bar(tt.percent, 10))
	}
}

package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"erp/internal/logger"
	"erp/internal/orgstructure"
	"erp/internal/profile"
	"erp/internal/store"
	"erp/internal/store/storetest"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	db := storetest.NewDB(t)
	catalog, err := orgstructure.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	out := new(bytes.Buffer)
	return &commandLine{
		db:       db.DB,
		driver:   store.DriverSQLite,
		profiles: profile.NewService(profile.NewRepository(db), logger.Discard()),
		org:      orgstructure.NewService(orgstructure.NewRepository(db), catalog, logger.Discard()),
		out:      out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func runTests(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			} else if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() expected an error")
			}
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	orig := migrateFunc
	defer func() { migrateFunc = orig }()
	migrateFunc = func(db *sql.DB, driver, command string, args ...string) error {
		if driver != store.DriverSQLite {
			return fmt.Errorf("unexpected driver %q", driver)
		}
		switch command {
		case "up", "up-by-one", "down", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runTests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "3"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
	})
}

func Test_commandLine_migrateEmbedded(t *testing.T) {
	cli, _ := setup(t)
	runTests(t, cli, []cliTest{
		{name: "version", args: []string{"migrate", "version"}},
	})
}

func Test_commandLine_seed(t *testing.T) {
	cli, out := setup(t)

	runTests(t, cli, []cliTest{
		{name: "first run", args: []string{"seed"}},
		{name: "second run", args: []string{"seed"}},
	})

	want := "Created: 4 Governing Bodies, 11 Schools, 88 Departments, 328 Programs, 9 Academic Sections, 8 Support Cells\n"
	if got := bytes.Count(out.Bytes(), []byte(want)); got != 2 {
		t.Errorf("seed summary printed %d times, want 2; output:\n%s", got, out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("  School of Law: 8 departments, 40 programs\n")) {
		t.Errorf("missing per-school counts; output:\n%s", out.String())
	}
}

func Test_commandLine_addProfile(t *testing.T) {
	cli, out := setup(t)

	runTests(t, cli, []cliTest{
		{name: "no args", args: []string{"addprofile"}, wantErr: errHelp},
		{name: "student", args: []string{"addprofile", "-username", "asha", "-enrollment", "EN1", "-department", "CSE", "-year", "2"}},
		{name: "duplicate username", args: []string{"addprofile", "-username", "asha"}, wantErrStr: "invalid input: map[username:username already taken]"},
		{name: "dean", args: []string{"addprofile", "-username", "dean1", "-role", "dean", "-school", "School of Law"}},
	})

	if err := cli.run([]string{"admin", "addprofile", "-username", "x", "-role", "janitor"}); err == nil || !strings.Contains(err.Error(), "role") {
		t.Errorf("cli.run() error = %v, want a role error", err)
	}

	p, err := cli.profiles.GetByUsername(context.Background(), "asha")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if p.Role != profile.RoleStudent || p.Department != "CSE" || p.Year.Int != 2 {
		t.Errorf("stored profile = %+v", p)
	}
	if !bytes.Contains(out.Bytes(), []byte("profile dean1 created with id ")) {
		t.Errorf("missing confirmation; output:\n%s", out.String())
	}
}

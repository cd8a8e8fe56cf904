package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"erp/internal/orgstructure"
	"erp/internal/profile"
	"erp/internal/store"
)

var (
	migrateFunc = store.Migrate // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sql.DB
	driver   string
	profiles *profile.Service
	org      *orgstructure.Service
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, up-by-one, up-to, down, down-to, redo, reset, status, version)")
	fmt.Fprintln(cli.out, "  seed - create the university structure, skipping units that already exist")
	fmt.Fprintln(cli.out, "  addprofile -username USERNAME [-role ROLE] [-first NAME] [-last NAME] [-email EMAIL] [-enrollment NO] [-department DEPT] [-school SCHOOL] [-year N] [-section S]")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addProfileCmd := flag.NewFlagSet("addprofile", flag.ContinueOnError)
	addProfileCmd.SetOutput(cli.out)
	var np profile.NewProfile
	addProfileCmd.StringVar(&np.Username, "username", "", "Login name of the profile.")
	addProfileCmd.StringVar(&np.Role, "role", string(profile.RoleStudent), "One of admin, dean, hod, faculty, crc, student.")
	addProfileCmd.StringVar(&np.FirstName, "first", "", "First name.")
	addProfileCmd.StringVar(&np.LastName, "last", "", "Last name.")
	addProfileCmd.StringVar(&np.Email, "email", "", "Email address.")
	addProfileCmd.StringVar(&np.EnrollmentNo, "enrollment", "", "Enrollment number, unique among students.")
	addProfileCmd.StringVar(&np.ContactNo, "contact", "", "Mobile number.")
	addProfileCmd.StringVar(&np.Department, "department", "", "Department name.")
	addProfileCmd.StringVar(&np.School, "school", "", "School name.")
	addProfileCmd.IntVar(&np.Year, "year", 0, "Year of study.")
	addProfileCmd.StringVar(&np.Section, "section", "", "Section.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "addprofile":
		if err := addProfileCmd.Parse(args[2:]); err != nil {
			return err
		}
		if np.Username == "" {
			addProfileCmd.Usage()
			return errHelp
		}
		return cli.addProfile(np)
	default:
		cli.printUsage()
		return errHelp
	}
}

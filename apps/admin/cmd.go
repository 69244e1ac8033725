package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/presence/core/alert"
	"github.com/trezcool/presence/core/student"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out io.Writer

	db *sqlx.DB // migrate only

	svc    *student.Service
	roster *student.Roster
	alerts *alert.Box
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]              - run a goose command (up, down, status, ...) on the postgres store")
	fmt.Fprintln(cli.out, "  roster                              - print the present students")
	fmt.Fprintln(cli.out, "  checkin -roll REG_NUMBER -name NAME - check a student in now")
	fmt.Fprintln(cli.out, "  checkout -id ID [-name NAME]        - check a student out now")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	checkInCmd := flag.NewFlagSet("checkin", flag.ExitOnError)
	checkInRoll := checkInCmd.String("roll", "", "The student's registration number.")
	checkInName := checkInCmd.String("name", "", "The student's name.")

	checkOutCmd := flag.NewFlagSet("checkout", flag.ExitOnError)
	checkOutID := checkOutCmd.String("id", "", "The record ID, as printed by `roster`.")
	checkOutName := checkOutCmd.String("name", "", "The name shown in the alert. Defaults to the record's.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "roster":
		return cli.printRoster()
	case "checkin":
		if err := checkInCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkInRoll == "" || *checkInName == "" {
			checkInCmd.Usage()
			return errHelp
		}
		return cli.checkIn(*checkInRoll, *checkInName)
	case "checkout":
		if err := checkOutCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *checkOutID == "" {
			checkOutCmd.Usage()
			return errHelp
		}
		return cli.checkOut(*checkOutID, *checkOutName)
	default:
		cli.printUsage()
		return errHelp
	}
}

var ansiColors = map[string]string{
	alert.ColorSuccess: "\033[36m",
	alert.ColorError:   "\033[31m",
}

// printAlert prints a visible alert, colored on a terminal.
func (cli *commandLine) printAlert(a alert.Alert) {
	if !a.Show {
		return
	}
	line := fmt.Sprintf("[%s] %s", a.Title, a.Message)
	if code, ok := ansiColors[a.Color]; ok && isTerminalFunc() {
		line = code + line + "\033[0m"
	}
	fmt.Fprintln(cli.out, line)
}

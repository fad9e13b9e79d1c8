package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/buildbytes/lms/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrSvc *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addmentor -name NAME -email EMAIL - create a mentor account (password prompted)")
	fmt.Println("  setrole -email EMAIL -role ROLE   - change a user's role")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addMentorCmd := flag.NewFlagSet("addmentor", flag.ExitOnError)
	addMentorName := addMentorCmd.String("name", "", "The mentor's full name.")
	addMentorEmail := addMentorCmd.String("email", "", "The mentor's email. The password will be prompted next.")

	setRoleCmd := flag.NewFlagSet("setrole", flag.ExitOnError)
	setRoleEmail := setRoleCmd.String("email", "", "The user's email.")
	setRoleRole := setRoleCmd.String("role", "", "The new role: mentor or student.")

	switch args[1] {
	case "addmentor":
		if err := addMentorCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addMentorName == "" || *addMentorEmail == "" {
			addMentorCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addMentorCmd.Usage()
			return errHelp
		}
		return cli.addMentor(*addMentorName, *addMentorEmail, string(pwd))
	case "setrole":
		if err := setRoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setRoleEmail == "" || *setRoleRole == "" {
			setRoleCmd.Usage()
			return errHelp
		}
		return cli.setRole(*setRoleEmail, user.Role(*setRoleRole))
	default:
		cli.printUsage()
		return errHelp
	}
}

package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/pending-expense/pending-expense-app/api"
)

var LoginCmd = Login{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},
}

// Login checks a cost center's credentials against the user sheet.
type Login struct {
	command
	username string
	password string
}

func (cmd *Login) Name() string {
	return "login"
}

func (cmd *Login) Description() string {
	return "Verifies a cost center login against the user sheet"
}

func (cmd *Login) Usage() string {
	return "--username <cost center> --password <password>"
}

func (cmd *Login) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] login --username <cost center> --password <password>\n", APP)
	fmt.Println()
	fmt.Println("  Verifies the cost center credentials and displays the session token (if enabled)")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s login --username CC01 --password 01012530\n", APP)
	fmt.Println()
}

func (cmd *Login) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("login")

	flagset.StringVar(&cmd.username, "username", cmd.username, "Cost center code")
	flagset.StringVar(&cmd.password, "password", cmd.password, "Password")

	return flagset
}

func (cmd *Login) Execute(args ...any) error {
	ctx, options := arguments(args)

	// ... check parameters
	if strings.TrimSpace(cmd.username) == "" {
		return fmt.Errorf("--username is a required option")
	}

	cfg, err := cmd.configure(options)
	if err != nil {
		return err
	}

	h, logger, err := cmd.handler(cfg)
	if err != nil {
		return err
	}

	defer logger.Sync()

	ok, token, err := h.Authenticate(ctx, cmd.username, cmd.password)
	if err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%v", api.MsgLoginFailed)
	}

	fmt.Println(api.MsgLoginOK)
	if token != "" {
		fmt.Println(token)
	}

	return nil
}

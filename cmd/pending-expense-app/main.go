package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	command "github.com/uhppoted/uhppoted-lib/command"
	"github.com/uhppoted/uhppoted-lib/log"

	"github.com/pending-expense/pending-expense-app/commands"
)

var cli = []command.Command{
	&commands.VersionCmd,
	&commands.ServeCmd,
	&commands.LoginCmd,
	&commands.GetDataCmd,
	&commands.AuthoriseCmd,
}

var options = commands.Options{
	Config: "",
	Debug:  false,
}

var help = command.NewHelp(commands.APP, cli, nil)

func main() {
	flag.StringVar(&options.Config, "config", options.Config, "Configuration file (YAML or JSONC)")
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	log.SetDebug(options.Debug)

	cmd, err := command.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cmd == nil {
		help.Execute(ctx)
		os.Exit(1)
	}

	if err = cmd.Execute(ctx, &options); err != nil {
		fmt.Printf("\n   ERROR: %v\n\n", err)
		os.Exit(1)
	}
}

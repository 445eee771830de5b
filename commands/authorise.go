package commands

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pending-expense/pending-expense-app/api"
	"github.com/pending-expense/pending-expense-app/google"
)

var AuthoriseCmd = Authorise{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},
	credentials: "",
}

// Authorise runs the OAuth consent flow for an OAuth client credentials file and caches the
// access/refresh token for the serve, login and get-data commands.
type Authorise struct {
	command
	credentials string
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises pending-expense-app to read the Google Sheets spreadsheets"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] authorise [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises pending-expense-app to read the Google Sheets spreadsheets with an OAuth client")
	fmt.Println("  credentials file. Not required for service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s authorise --credentials \"credentials.json\"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("authorise")

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the OAuth client 'credentials.json' file. Defaults to the configured credentials file")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	ctx, options := arguments(args)

	cfg, err := cmd.configure(options)
	if err != nil {
		return err
	}

	credentials := cmd.credentials
	if credentials == "" {
		credentials = cfg.CredentialsFile
	}

	if credentials == "" {
		credentials = DEFAULT_CREDENTIALS
	}

	key, err := os.ReadFile(credentials)
	if err != nil {
		return fmt.Errorf("unable to read credentials file (%w)", err)
	}

	tokens := cmd.tokens
	if tokens == "" {
		tokens = tokensFile(cmd.workdir, credentials)
	}

	if err := os.MkdirAll(filepath.Dir(tokens), 0700); err != nil {
		return err
	}

	if cmd.debug {
		debugf("credentials %v", credentials)
		debugf("tokens      %v", tokens)
	}

	if err := google.Authorise(ctx, key, tokens, prompt, api.Scopes(cfg)...); err != nil {
		return fmt.Errorf("Authorisation error (%v)", err)
	}

	infof("Saved OAuth token to %v", tokens)

	return nil
}

func prompt(url string) (string, error) {
	fmt.Println()
	fmt.Println("  Open the following link in your browser and paste the authorisation code below:")
	fmt.Println()
	fmt.Printf("    %v\n", url)
	fmt.Println()
	fmt.Print("  Authorisation code: ")

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}

	if code = strings.TrimSpace(code); code == "" {
		return "", fmt.Errorf("no authorisation code")
	}

	return code, nil
}

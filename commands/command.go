package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uhppoted/uhppoted-lib/log"
	"go.uber.org/zap"

	"github.com/pending-expense/pending-expense-app/api"
	"github.com/pending-expense/pending-expense-app/config"
)

const APP = "pending-expense-app"

const LOG_TAG = "pending-expense"

func tagged(format string) string {
	return fmt.Sprintf("%-16v %v", LOG_TAG, format)
}

// Options are the global command line options.
type Options struct {
	Config string
	Debug  bool
}

// arguments extracts the context and global options passed to Execute.
func arguments(args []any) (context.Context, *Options) {
	ctx := context.Background()
	options := &Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v

		case *Options:
			options = v
		}
	}

	return ctx, options
}

type command struct {
	workdir string
	tokens  string
	debug   bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (OAuth tokens)")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "OAuth tokens file. Defaults to <workdir>/.google/<credentials>.sheets")

	return flagset
}

// configure loads the configuration from the --config file, PENDING_EXPENSE_CONFIG or the
// default configuration file (if it exists), in that order.
func (c *command) configure(options *Options) (*config.Config, error) {
	c.debug = options.Debug

	path := options.Config
	if path == "" && os.Getenv("PENDING_EXPENSE_CONFIG") == "" {
		if _, err := os.Stat(DEFAULT_CONFIG); err == nil {
			path = DEFAULT_CONFIG
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if c.debug {
		debugf("configuration %v", path)
		debugf("  users       %v", cfg.Sheets.UserSheet())
		debugf("  permissions %v", cfg.Sheets.PermissionSheet())
		debugf("  expenses    %v", cfg.Sheets.ExpenseSheet())
	}

	return cfg, nil
}

// handler returns an API handler that authorises with either a service account or an OAuth
// client and the cached tokens.
func (c *command) handler(cfg *config.Config) (*api.Handler, *zap.Logger, error) {
	logger, err := newLogger(c.debug)
	if err != nil {
		return nil, nil, err
	}

	tokens := c.tokens
	if tokens == "" {
		tokens = tokensFile(c.workdir, cfg.CredentialsFile)
	}

	return api.NewHandler(cfg, api.OAuthConnector(tokens), logger), logger, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

// tokensFile derives the OAuth tokens file for a credentials file, e.g.
// <workdir>/.google/credentials.sheets.
func tokensFile(workdir, credentials string) string {
	name := "credentials"
	if credentials != "" {
		_, file := filepath.Split(credentials)
		name = strings.TrimSuffix(file, filepath.Ext(file))
	}

	return filepath.Join(workdir, ".google", fmt.Sprintf("%s.sheets", name))
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flagset.VisitAll(func(f *flag.Flag) {
		count++
	})

	if count > 0 {
		fmt.Println("  Command options:")
		fmt.Println()
		flagset.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
		fmt.Println()
	}

	fmt.Println("  Options:")
	fmt.Println()
	fmt.Println("    --config  Configuration file (YAML or JSONC)")
	fmt.Println("    --debug   Displays internal information for diagnosing errors")
}

func debugf(format string, args ...any) {
	log.Debugf(tagged(format), args...)
}

func infof(format string, args ...any) {
	log.Infof(tagged(format), args...)
}

func warnf(format string, args ...any) {
	log.Warnf(tagged(format), args...)
}

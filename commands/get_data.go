package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pending-expense/pending-expense-app/expenses"
)

var GetDataCmd = GetData{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},

	costCenter: "",
	file:       time.Now().Format("2006-01-02T150405.tsv"),
}

// GetData retrieves the pending expenses visible to a cost center and stores them to a
// TSV file.
type GetData struct {
	command
	costCenter string
	file       string
}

func (cmd *GetData) Name() string {
	return "get-data"
}

func (cmd *GetData) Description() string {
	return "Retrieves the pending expenses visible to a cost center and stores them to a local file"
}

func (cmd *GetData) Usage() string {
	return "--cost-center <code> --file <file>"
}

func (cmd *GetData) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] get-data [options] --cost-center <code> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the pending expenses visible to a cost center to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug get-data --cost-center CC01 --file \"CC01.tsv\"\n", APP)
	fmt.Println()
}

func (cmd *GetData) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get-data")

	flagset.StringVar(&cmd.costCenter, "cost-center", cmd.costCenter, "Cost center code")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *GetData) Execute(args ...any) error {
	ctx, options := arguments(args)

	// ... check parameters
	if strings.TrimSpace(cmd.costCenter) == "" {
		return fmt.Errorf("--cost-center is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
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

	visible, err := h.Expenses(ctx, cmd.costCenter)
	if err != nil {
		return fmt.Errorf("unable to retrieve expenses (%w)", err)
	}

	if cmd.debug {
		debugf("cost center %v  access:%v  records:%v  last update:%v", cmd.costCenter, visible.Access, len(visible.Records), visible.LastUpdate)
	}

	if err := store(cmd.file, visible.Header, visible.Records); err != nil {
		return err
	}

	infof("Retrieved %v pending expenses to file %s", len(visible.Records), cmd.file)

	return nil
}

// store writes the expense records to a temporary file and then moves it to the destination,
// so that an existing file is only ever replaced with a complete one.
func store(file string, header []string, records []expenses.Record) error {
	tmp, err := os.CreateTemp(os.TempDir(), "expenses")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := expenses.MakeTSV(tmp, header, records); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

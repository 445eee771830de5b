package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pending-expense/pending-expense-app/api"
)

var ServeCmd = Serve{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},
	bind: "",
}

// Serve runs the API endpoint as a local HTTP server.
type Serve struct {
	command
	bind string
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs the pending expense API as a local HTTP server"
}

func (cmd *Serve) Usage() string {
	return "[--bind <address>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] serve [options]\n", APP)
	fmt.Println()
	fmt.Println("  Serves the login/getData API on the configured paths (default /api and /.netlify/functions/api)")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug serve --bind 127.0.0.1:8888\n", APP)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("serve")

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "HTTP server bind address. Defaults to the configured address (:8080)")

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	ctx, options := arguments(args)

	cfg, err := cmd.configure(options)
	if err != nil {
		return err
	}

	if cmd.bind != "" {
		cfg.HTTP.Bind = cmd.bind
	}

	h, logger, err := cmd.handler(cfg)
	if err != nil {
		return err
	}

	defer logger.Sync()

	if !cmd.debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Bind,
		Handler:           api.NewRouter(h, cfg.HTTP.Paths...),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		infof("listening on %v %v", cfg.HTTP.Bind, cfg.HTTP.Paths)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	// ... wait for CTRL-C or SIGTERM
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	select {
	case <-interrupt:
		infof("shutting down")

	case <-ctx.Done():
		infof("shutting down (%v)", ctx.Err())

	case err := <-errs:
		return fmt.Errorf("HTTP server error (%w)", err)
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdown); err != nil {
		warnf("%v", err)
	}

	return nil
}

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Tap30/ripple-analytics/internal/collector"
	"github.com/mitchellh/cli"
)

const shutdownTimeout = 5 * time.Second

type CollectCommand struct {
	Ui cli.Ui

	// flags
	addr         string
	path         string
	apiKey       string
	apiKeyHeader string

	// listening is notified with the bound address once the server accepts
	// connections.
	listening chan<- string
}

func (c *CollectCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("collect")

	fs.StringVar(&c.addr, "addr", ":3000", "address to listen on")
	fs.StringVar(&c.path, "path", "/events", "path events are posted to")
	fs.StringVar(&c.apiKey, "api-key", "", "reject batches without this API key (disabled when empty)")
	fs.StringVar(&c.apiKeyHeader, "api-key-header", "X-API-Key", "header carrying the API key")

	fs.Usage = func() { c.Ui.Error(c.Help()) }

	return fs
}

func (c *CollectCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.serve(ctx); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	return 0
}

func (c *CollectCommand) serve(ctx context.Context) error {
	col := collector.New(log.New(uiWriter{c.Ui}, "", log.LstdFlags))
	col.APIKey = c.apiKey
	col.APIKeyHeader = c.apiKeyHeader

	mux := http.NewServeMux()
	mux.Handle(c.path, col.Handler())

	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.addr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	c.Ui.Output(fmt.Sprintf("Collecting events on http://%s%s", ln.Addr(), c.path))
	if c.listening != nil {
		c.listening <- ln.Addr().String()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Ui.Output("Shutting down collector")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	c.Ui.Output(fmt.Sprintf("Received %d events", len(col.Events())))
	return nil
}

func (c *CollectCommand) Help() string {
	helpText := `
Usage: ripple collect [options]

` + c.Synopsis() + `

Events carrying the parameter trigger_error=true are answered with a 500 so
client retries can be exercised.

` + helpForFlags(c.flags())

	return strings.TrimSpace(helpText)
}

func (c *CollectCommand) Synopsis() string {
	return "Runs a local event collector"
}

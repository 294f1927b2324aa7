package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/goquery"
	unfurlhttp "github.com/fwojciec/unfurl/http"
	"github.com/fwojciec/unfurl/preview"
	unfurlslog "github.com/fwojciec/unfurl/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by the watch command. Defaults to os.Stdin.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("unfurl"),
		kong.Description("Fetch URLs and print link previews"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'unfurl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := []unfurlhttp.Option{
		unfurlhttp.WithTimeout(cli.Timeout),
		unfurlhttp.WithRetryDelays(retryDelays(cli.Retries)),
	}
	if cli.UserAgent != "" {
		opts = append(opts, unfurlhttp.WithUserAgent(cli.UserAgent))
	}
	fetcher := unfurlslog.NewLoggingFetcher(unfurlhttp.NewFetcher(opts...), logger)
	defer fetcher.Close()

	extractor := unfurlslog.NewLoggingExtractor(goquery.NewExtractor(), logger)
	deps.Previewer = unfurlslog.NewLoggingPreviewer(preview.NewService(fetcher, extractor), logger)

	return kongCtx.Run(deps)
}

// retryDelays returns n backoff delays doubling from one second.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, max(n, 0))
	for i := range n {
		delays = append(delays, time.Second<<i)
	}
	return delays
}

// errorMessage returns a user-facing message for err. Application errors
// carry their own message; anything else is shown as is.
func errorMessage(err error) string {
	if unfurl.ErrorCode(err) == unfurl.EINTERNAL {
		return err.Error()
	}
	return unfurl.ErrorMessage(err)
}

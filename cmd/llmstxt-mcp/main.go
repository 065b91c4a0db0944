package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/fetch"
	"github.com/fwojciec/llmstxt/fs"
	"github.com/fwojciec/llmstxt/goquery"
	"github.com/fwojciec/llmstxt/htmltomarkdown"
	llmshttp "github.com/fwojciec/llmstxt/http"
	"github.com/fwojciec/llmstxt/mcp"
	llmslog "github.com/fwojciec/llmstxt/slog"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Transport replaces stdio for the MCP session. Set before calling Run().
	Transport gomcp.Transport

	// Settings and Server are populated by Run for end-to-end testing.
	Settings *Settings
	Server   *mcp.Server
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run parses args, wires the fetch pipeline and serves MCP until ctx is
// canceled or the client disconnects.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli, err := m.Configure(args, stdout, stderr)
	if err != nil || cli == nil {
		return err
	}

	logger := newLogger(stderr, cli.Debug)
	if m.Settings, err = loadSettings(cli, logger); err != nil {
		return err
	}
	logSummary(logger, m.Settings)

	m.Server = mcp.New(mcp.Config{
		Version:  version,
		Registry: m.Settings.Registry,
		Fetcher:  m.newFetcher(cli, logger),
		Logger:   logger,
	})

	if cli.Listen != "" {
		return m.serveHTTP(ctx, cli.Listen, logger)
	}

	transport := m.Transport
	if transport == nil {
		transport = &gomcp.StdioTransport{}
	}
	logger.Info("serving MCP over stdio", "version", version)
	return m.Server.Run(ctx, transport)
}

// Configure parses args. It returns a nil CLI without error when the
// invocation only asked for help or the version.
func (m *Main) Configure(args []string, stdout, stderr io.Writer) (*CLI, error) {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmstxt-mcp"),
		kong.Description("Serve llms.txt documentation sources over the Model Context Protocol."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil, nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}

	if cli.Version {
		fmt.Fprintln(stdout, version)
		return nil, nil
	}
	if cli.Concurrency < 1 {
		return nil, fmt.Errorf("--concurrency must be at least 1, got %d", cli.Concurrency)
	}
	if cli.Rate < 0 {
		return nil, fmt.Errorf("--rate must not be negative, got %v", cli.Rate)
	}
	if cli.RateBurst < 1 {
		return nil, fmt.Errorf("--rate-burst must be at least 1, got %d", cli.RateBurst)
	}
	if cli.Timeout < 0 {
		return nil, fmt.Errorf("--timeout must not be negative, got %v", cli.Timeout)
	}
	return cli, nil
}

// newFetcher wires resolver, guard and fetchers into the batch service.
// With --debug every stage is wrapped in a logging decorator.
func (m *Main) newFetcher(cli *CLI, logger *slog.Logger) llmstxt.BatchFetcher {
	router := &fetch.Router{
		Remote: llmshttp.NewFetcher(llmshttp.WithTimeout(cli.Timeout)),
		Local:  fs.NewReader(),
	}
	if cli.Rate > 0 {
		router.RateLimiter = fetch.NewHostLimiter(cli.Rate, cli.RateBurst)
	}

	var (
		resolver llmstxt.Resolver = fs.NewResolver()
		guard    llmstxt.Guard    = &llmstxt.AccessPolicy{
			Allowlist:  m.Settings.Allowlist,
			LocalRoots: m.Settings.LocalRoots,
		}
		fetcher llmstxt.Fetcher = router
	)
	if cli.Debug {
		resolver = llmslog.NewLoggingResolver(resolver, logger)
		guard = llmslog.NewLoggingGuard(guard, logger)
		fetcher = llmslog.NewLoggingFetcher(fetcher, logger)
	}

	service := &fetch.Service{
		Resolver:    resolver,
		Guard:       guard,
		Fetcher:     fetcher,
		Concurrency: cli.Concurrency,
	}
	if cli.Markdown {
		service.Extractor = goquery.NewExtractor()
		service.Converter = htmltomarkdown.NewConverter()
	}

	if cli.Debug {
		return llmslog.NewLoggingBatchFetcher(service, logger)
	}
	return service
}

func (m *Main) serveHTTP(ctx context.Context, addr string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Server.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over streamable HTTP", "addr", addr, "endpoint", "/mcp", "version", version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func logSummary(logger *slog.Logger, s *Settings) {
	names := make([]string, 0, s.Registry.Len())
	for _, src := range s.Registry.Sources() {
		names = append(names, src.Name)
	}
	roots := "(unrestricted)"
	if len(s.LocalRoots) > 0 {
		roots = fmt.Sprint(s.LocalRoots)
	}
	logger.Info("configuration",
		"sources", names,
		"allowed_domains", s.Allowlist.String(),
		"local_roots", roots,
	)
}

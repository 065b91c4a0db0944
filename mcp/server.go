// Package mcp exposes the documentation registry and fetch pipeline as
// Model Context Protocol tools.
package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/fwojciec/llmstxt"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config holds the dependencies of the MCP server.
type Config struct {
	Version  string
	Registry *llmstxt.Registry
	Fetcher  llmstxt.BatchFetcher
	Logger   *slog.Logger
}

// Server wraps the MCP server with the documentation tools.
type Server struct {
	mcp      *gomcp.Server
	registry *llmstxt.Registry
	fetcher  llmstxt.BatchFetcher
	logger   *slog.Logger
}

// New creates a server with both tools registered.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		registry: cfg.Registry,
		fetcher:  cfg.Fetcher,
		logger:   logger,
	}
	s.mcp = gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "llmstxt-mcp",
			Title:   "llms.txt Documentation Server",
			Version: version,
		},
		&gomcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	s.registerTools()
	return s
}

const serverInstructions = `Serves llms.txt documentation. Call list_llms_txt_sources to see the configured sources, then fetch_llms_txt with one or more of the listed locations.`

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *gomcp.Server { return s.mcp }

// Run serves a single session over the given transport until it closes or
// ctx is canceled.
func (s *Server) Run(ctx context.Context, t gomcp.Transport) error {
	return s.mcp.Run(ctx, t)
}

// RunStdio serves over stdin and stdout.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &gomcp.StdioTransport{})
}

// HTTPHandler returns a handler serving the streamable HTTP transport on
// /mcp and a liveness probe on /health.
func (s *Server) HTTPHandler() http.Handler {
	streamable := gomcp.NewStreamableHTTPHandler(
		func(*http.Request) *gomcp.Server { return s.mcp },
		&gomcp.StreamableHTTPOptions{},
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.Handle("/mcp", streamable)

	return s.recoveryMiddleware(securityHeaders(mux))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","service":"llmstxt-mcp"}`))
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic in HTTP handler", "err", err, "stack", string(debug.Stack()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

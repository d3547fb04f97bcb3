// Package mcp exposes the solver to agent tooling over the Model Context
// Protocol, with stdio and SSE transports.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jdahm/lattice"
	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/bench"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/scenario"
)

// Server wraps a scenario runner and exposes it as an MCP server.
type Server struct {
	runner    ports.Runner
	store     ports.RunStore
	backends  []string
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server returned by NewServer.
type Option func(*Server)

// WithStore enables the list_runs and get_run tools.
func WithStore(store ports.RunStore) Option {
	return func(s *Server) { s.store = store }
}

// WithBackends overrides the names served by the lattice://backends resource.
func WithBackends(names []string) Option {
	return func(s *Server) { s.backends = names }
}

// WithLogger sets the server logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP server instance around the given runner.
func NewServer(runner ports.Runner, opts ...Option) *Server {
	s := &Server{
		runner:    runner,
		backends:  backend.Names(),
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("lattice-mcp", strings.TrimSpace(lattice.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("mcp server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("mcp server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: run_scenario
	runTool := mcp.NewTool("run_scenario",
		mcp.WithDescription("Run a hyperdiffusion scenario to completion and return the run record."),
		mcp.WithString("scenario", mcp.Required(), mcp.Description("Scenario document as YAML or JSON")),
		mcp.WithString("backend", mcp.Description("Backend name overriding the document (optional)")),
		mcp.WithOutputSchema[ports.RunRecord](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunScenario))

	// TOOL: compare_backends
	compareTool := mcp.NewTool("compare_backends",
		mcp.WithDescription("Time a scenario across backends and report mean step rates and result agreement."),
		mcp.WithString("scenario", mcp.Required(), mcp.Description("Scenario document as YAML or JSON")),
		mcp.WithString("backends", mcp.Description("JSON array of backend names; the first entry is the baseline (optional)")),
		mcp.WithNumber("reps", mcp.Description("Timed repetitions per backend, default 1")),
		mcp.WithOutputSchema[bench.Report](),
	)
	s.mcpServer.AddTool(compareTool, mcp.NewStructuredToolHandler(s.handleCompareBackends))

	// TOOL: list_runs
	s.mcpServer.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List stored run records, oldest first."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if s.store == nil {
			return mcp.NewToolResultError("no run store configured"), nil
		}
		recs, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list runs failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(recs)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_run
	s.mcpServer.AddTool(mcp.NewTool("get_run",
		mcp.WithDescription("Fetch a stored run record by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Run record ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if s.store == nil {
			return mcp.NewToolResultError("no run store configured"), nil
		}
		id := request.GetString("id", "")
		rec, err := s.store.Get(ctx, id)
		if errors.Is(err, ports.ErrRunNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("run %q not found", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get run failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(rec)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleRunScenario(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ports.RunRecord, error) {
	doc, _ := args["scenario"].(string)
	sc, err := scenario.Parse([]byte(doc))
	if err != nil {
		return ports.RunRecord{}, fmt.Errorf("parse scenario: %w", err)
	}
	if name, ok := args["backend"].(string); ok && name != "" {
		sc.Backend = name
	}

	rec, _, err := s.runner.RunScenario(ctx, sc)
	if err != nil {
		return ports.RunRecord{}, fmt.Errorf("run failed: %w", err)
	}
	return rec, nil
}

func (s *Server) handleCompareBackends(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (bench.Report, error) {
	doc, _ := args["scenario"].(string)
	sc, err := scenario.Parse([]byte(doc))
	if err != nil {
		return bench.Report{}, fmt.Errorf("parse scenario: %w", err)
	}

	reps := 1
	if n, ok := args["reps"].(float64); ok && n >= 1 {
		reps = int(n)
	}

	opts := []bench.Option{
		bench.WithReps(reps),
		bench.WithLogger(s.logger),
	}
	if namesStr, ok := args["backends"].(string); ok && namesStr != "" {
		var names []string
		_ = json.Unmarshal([]byte(namesStr), &names)
		if len(names) > 0 {
			opts = append(opts, bench.WithBackends(names...))
		}
	}

	report, err := bench.Run(ctx, sc, opts...)
	if err != nil {
		return bench.Report{}, fmt.Errorf("comparison failed: %w", err)
	}
	return *report, nil
}

func (s *Server) registerResources() {
	// EXPOSE: lattice://backends
	s.mcpServer.AddResource(mcp.NewResource("lattice://backends", "Registered Backends",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(s.backends)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "lattice://backends",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

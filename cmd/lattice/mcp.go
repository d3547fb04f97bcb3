package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice"
	"github.com/jdahm/lattice/internal/cli"
	"github.com/jdahm/lattice/internal/logging"
	mcpadapter "github.com/jdahm/lattice/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the solver as an MCP server so AI agents can run scenarios and
compare backends as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		lvl, err := logging.ParseLevel(logLevelFromFlags(cmd))
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		logger := logging.New(lvl)
		slog.SetDefault(logger)

		store, err := cli.NewStore(storeOptionsFromFlags(cmd))
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		if closer, ok := store.(io.Closer); ok {
			defer closer.Close()
		}

		solverOpts := []lattice.Option{lattice.WithLogger(logger)}
		if store != nil {
			solverOpts = append(solverOpts, lattice.WithStore(store))
		}
		solver, err := lattice.New(solverOpts...)
		if err != nil {
			log.Fatalf("Error initializing solver: %v", err)
		}

		srvOpts := []mcpadapter.Option{
			mcpadapter.WithBackends(solver.Backends()),
			mcpadapter.WithLogger(logger),
		}
		if store != nil {
			srvOpts = append(srvOpts, mcpadapter.WithStore(store))
		}
		srv := mcpadapter.NewServer(solver, srvOpts...)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8765, "Port to listen on (only for SSE)")
}

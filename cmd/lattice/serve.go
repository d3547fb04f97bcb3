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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jdahm/lattice"
	"github.com/jdahm/lattice/internal/cli"
	"github.com/jdahm/lattice/internal/logging"
	"github.com/jdahm/lattice/internal/presentation/tui"
	httpadapter "github.com/jdahm/lattice/pkg/adapters/http"
	"github.com/jdahm/lattice/pkg/observability"
	"github.com/jdahm/lattice/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts a JSON API for running scenarios and browsing stored run records,
with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		noMetrics, _ := cmd.Flags().GetBool("no-metrics")

		lvl, err := logging.ParseLevel(logLevelFromFlags(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(lvl)
		slog.SetDefault(logger)

		store, err := cli.NewStore(storeOptionsFromFlags(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
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
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		handlerOpts := []httpadapter.Option{
			httpadapter.WithBackends(solver.Backends()),
			httpadapter.WithLogger(logger),
		}
		if store != nil {
			handlerOpts = append(handlerOpts, httpadapter.WithStore(store))
		}

		var runner ports.Runner = solver
		if !noMetrics {
			collector := observability.NewCollector(nil)
			runner = observability.WrapRunner(solver, collector)
			handlerOpts = append(handlerOpts, httpadapter.WithMetrics(promhttp.Handler()))
		}

		handler := httpadapter.NewHandler(runner, handlerOpts...)

		tui.PrintBanner(lattice.Version)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := httpadapter.Serve(ctx, ":"+port, handler, logger); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				fmt.Printf("Server error: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Println("Server stopped gracefully")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("no-metrics", false, "Disable the /metrics endpoint")
}

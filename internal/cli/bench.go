package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jdahm/lattice/internal/presentation/report"
	"github.com/jdahm/lattice/internal/presentation/tui"
	"github.com/jdahm/lattice/pkg/bench"
)

// BenchOptions contains all the configuration for the bench command.
type BenchOptions struct {
	ScenarioPath string
	Backends     []string
	Reps         int
	Warmup       int
	LogLevel     string
	Format       string // "markdown", "json" or "yaml"
}

// ExecuteBench times the scenario across backends and prints the report.
func ExecuteBench(opts BenchOptions) error {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	sc, err := loadScenario(opts.ScenarioPath)
	if err != nil {
		return err
	}

	benchOpts := []bench.Option{
		bench.WithLogger(logger),
		bench.WithReps(opts.Reps),
		bench.WithWarmup(opts.Warmup),
	}
	if len(opts.Backends) > 0 {
		benchOpts = append(benchOpts, bench.WithBackends(opts.Backends...))
	}

	sctx := NewSignalContext(context.Background())
	defer sctx.Cancel()

	rep, err := bench.Run(sctx, sc, benchOpts...)
	if err != nil {
		if isInterrupted(err) {
			reportInterruption(sctx.Signal(), false)
			return nil
		}
		return err
	}

	switch opts.Format {
	case "", "markdown":
		return tui.Render(os.Stdout, report.Comparison(rep))
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(rep)
	default:
		return fmt.Errorf("unknown output format %q (known: markdown, json, yaml)", opts.Format)
	}
}

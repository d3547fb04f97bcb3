package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jdahm/lattice"
	"github.com/jdahm/lattice/internal/presentation/report"
	"github.com/jdahm/lattice/internal/presentation/tui"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ScenarioPath string
	Backend      string
	Steps        int // overrides the scenario when >= 0
	LogLevel     string
	Quiet        bool
	Format       string // "markdown", "json" or "yaml"
	Store        StoreOptions
}

// Execute handles the 'run' command logic: load the scenario, integrate
// it to completion and print the run record.
func Execute(opts RunOptions) error {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	sc, err := loadScenario(opts.ScenarioPath)
	if err != nil {
		return err
	}
	if opts.Backend != "" {
		sc.Backend = opts.Backend
	}
	if opts.Steps >= 0 {
		sc.Steps = opts.Steps
	}

	store, err := NewStore(opts.Store)
	if err != nil {
		return err
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
		return err
	}

	// The banner and progress chatter only make sense for the human
	// format; json and yaml stay machine-clean.
	decorate := !opts.Quiet && (opts.Format == "" || opts.Format == "markdown")
	if decorate {
		tui.PrintBanner(lattice.Version)
		printSystemMessage("Running scenario '%s' (%dx%dx%d, %d steps)...",
			sc.Name, sc.Grid.NX, sc.Grid.NY, sc.Grid.NZ, sc.Steps)
	}

	sctx := NewSignalContext(context.Background())
	defer sctx.Cancel()

	rec, _, err := solver.RunScenario(sctx, sc)
	if err != nil {
		if isInterrupted(err) {
			reportInterruption(sctx.Signal(), !decorate)
			return nil
		}
		return err
	}

	switch opts.Format {
	case "", "markdown":
		return tui.Render(os.Stdout, report.Run(rec))
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(rec)
	default:
		return fmt.Errorf("unknown output format %q (known: markdown, json, yaml)", opts.Format)
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jdahm/lattice/internal/presentation/report"
	"github.com/jdahm/lattice/internal/presentation/tui"
	"github.com/jdahm/lattice/pkg/ports"
)

// RunsOptions contains the configuration for the runs subcommands.
type RunsOptions struct {
	Store    StoreOptions
	LogLevel string
}

// openStore builds the store for the runs subcommands, which cannot work
// without one.
func openStore(opts RunsOptions) (ports.RunStore, error) {
	store, err := NewStore(opts.Store)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("the runs command needs a store (--store file or --store redis)")
	}
	return store, nil
}

// ListRuns prints all stored run records, oldest first.
func ListRuns(opts RunsOptions) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	recs, err := store.List(context.Background())
	if err != nil {
		return err
	}

	return tui.Render(os.Stdout, report.Runs(recs))
}

// ShowRun prints one stored run record.
func ShowRun(opts RunsOptions, id string) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	rec, err := store.Get(context.Background(), id)
	if err != nil {
		return err
	}

	return tui.Render(os.Stdout, report.Run(rec))
}

// DeleteRun removes one stored run record.
func DeleteRun(opts RunsOptions, id string) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	if err := store.Delete(context.Background(), id); err != nil {
		return err
	}
	printSystemMessage("Deleted run '%s'.", id)
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jdahm/lattice/internal/logging"
	"github.com/jdahm/lattice/pkg/adapters/file"
	"github.com/jdahm/lattice/pkg/adapters/memory"
	"github.com/jdahm/lattice/pkg/adapters/redis"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/scenario"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger from a level name.
// Logs go to Stderr so they stay separate from the Stdout report flow.
func createLogger(level string) (*slog.Logger, error) {
	if level == "off" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// StoreOptions selects and parameterizes the run record store.
type StoreOptions struct {
	Kind          string // "", "none", "memory", "file" or "redis"
	Path          string // file store base directory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewStore builds the run store selected by opts. Kind "" or "none"
// yields a nil store. Callers should close stores that implement
// io.Closer when done.
func NewStore(opts StoreOptions) (ports.RunStore, error) {
	switch opts.Kind {
	case "", "none":
		return nil, nil
	case "memory":
		return memory.NewStore(), nil
	case "file":
		return file.New(opts.Path), nil
	case "redis":
		return redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q (known: none, memory, file, redis)", opts.Kind)
	}
}

// loadScenario reads the scenario at path, or the built-in demo scenario
// when path is empty.
func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default(), nil
	}
	return scenario.Load(path)
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// reportInterruption closes out the stdout flow after a signal arrived.
func reportInterruption(sig os.Signal, quiet bool) {
	if quiet || sig == nil {
		return
	}
	if sig == os.Interrupt {
		fmt.Printf("[CTRL+C]\n")
	} else {
		fmt.Printf("\n")
	}
	printSystemMessage("Interrupted by %v.", sig)
}

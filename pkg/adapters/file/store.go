package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jdahm/lattice/pkg/ports"
)

// Store implements ports.RunStore using the local filesystem.
// It stores run records as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".lattice/runs".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".lattice", "runs")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	if filepath.Base(id) != id {
		return "", fmt.Errorf("run ID cannot contain path separators: %q", id)
	}
	return filepath.Join(s.BasePath, id+".json"), nil
}

// Save persists the record to a JSON file atomically. It writes to a
// temporary file in the same directory, syncs, and renames it over the
// destination so readers never observe a partial record.
func (s *Store) Save(ctx context.Context, rec ports.RunRecord) error {
	destPath, err := s.path(rec.ID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure run directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	// Same directory as the destination, so the rename stays on one
	// filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+rec.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file over run record: %w", err)
	}
	return nil
}

// Get retrieves a record from its JSON file.
func (s *Store) Get(ctx context.Context, id string) (ports.RunRecord, error) {
	filePath, err := s.path(id)
	if err != nil {
		return ports.RunRecord{}, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return ports.RunRecord{}, ports.ErrRunNotFound
		}
		return ports.RunRecord{}, fmt.Errorf("failed to read run record: %w", err)
	}

	var rec ports.RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ports.RunRecord{}, fmt.Errorf("failed to unmarshal run record %q: %w", id, err)
	}
	return rec, nil
}

// List reads every record in the directory, oldest start time first.
func (s *Store) List(ctx context.Context) ([]ports.RunRecord, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []ports.RunRecord{}, nil
		}
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}

	runs := make([]ports.RunRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		rec, err := s.Get(ctx, id)
		if errors.Is(err, ports.ErrRunNotFound) {
			// Deleted between ReadDir and the read.
			continue
		}
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}

// Delete removes the record file. Missing IDs are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete run record: %w", err)
	}
	return nil
}

package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/stencil"
)

// RunStoreContract is a reusable test suite that verifies if an adapter
// complies with ports.RunStore. Every adapter's test file calls this
// against a fresh, empty store.
func RunStoreContract(t *testing.T, store ports.RunStore) {
	t.Helper()

	ctx := context.Background()
	base := time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)

	record := func(id string, started time.Time) ports.RunRecord {
		return ports.RunRecord{
			ID:       id,
			Scenario: "contract",
			Backend:  "vector",
			NX:       16, NY: 16, NZ: 4, Halo: 2,
			Params:    stencil.Params{DX: 1, DT: 1, Alpha: -0.02},
			Steps:     10,
			Checksum:  1600,
			MaxValue:  0.97,
			Elapsed:   42 * time.Millisecond,
			StartedAt: started,
		}
	}

	t.Run("Save and Get", func(t *testing.T) {
		rec := record("contract-run-1", base)
		require.NoError(t, store.Save(ctx, rec), "Save should not return error")

		loaded, err := store.Get(ctx, rec.ID)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, rec.ID, loaded.ID)
		assert.Equal(t, rec.Backend, loaded.Backend)
		assert.Equal(t, rec.NX, loaded.NX)
		assert.Equal(t, rec.Halo, loaded.Halo)
		assert.Equal(t, rec.Params, loaded.Params)
		assert.Equal(t, rec.Steps, loaded.Steps)
		assert.Equal(t, rec.Checksum, loaded.Checksum)
		assert.Equal(t, rec.Elapsed, loaded.Elapsed)
		assert.WithinDuration(t, rec.StartedAt, loaded.StartedAt, time.Millisecond)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		rec := record("contract-run-1", base)
		rec.Steps = 99
		require.NoError(t, store.Save(ctx, rec))

		loaded, err := store.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, 99, loaded.Steps)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "contract-missing")
		assert.ErrorIs(t, err, ports.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := record("contract-run-delete", base)
		require.NoError(t, store.Save(ctx, rec))

		require.NoError(t, store.Delete(ctx, rec.ID), "Delete should not return error")

		_, err := store.Get(ctx, rec.ID)
		assert.ErrorIs(t, err, ports.ErrRunNotFound, "Get after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, rec.ID), "Delete should be idempotent")
	})

	t.Run("List Ordered By Start Time", func(t *testing.T) {
		// Saved newest first on purpose; List must return oldest first.
		newer := record("contract-run-newer", base.Add(10*time.Second))
		older := record("contract-run-older", base.Add(2*time.Second))
		require.NoError(t, store.Save(ctx, newer))
		require.NoError(t, store.Save(ctx, older))

		defer func() {
			_ = store.Delete(ctx, newer.ID)
			_ = store.Delete(ctx, older.ID)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)

		var ids []string
		for _, r := range runs {
			ids = append(ids, r.ID)
		}
		assert.Contains(t, ids, newer.ID)
		assert.Contains(t, ids, older.ID)

		posOlder, posNewer := -1, -1
		for i, id := range ids {
			switch id {
			case older.ID:
				posOlder = i
			case newer.ID:
				posNewer = i
			}
		}
		assert.Less(t, posOlder, posNewer, "older run should list before newer")
	})
}

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdahm/lattice/pkg/adapters/redis"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/ports/tests"
)

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_Contract(t *testing.T) {
	store := redis.NewFromClient(newTestClient(t))
	tests.RunStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	rec := ports.RunRecord{
		ID:        "run-ttl",
		Backend:   "vector",
		StartedAt: time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, rec))

	runs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	mr.FastForward(2 * time.Second)

	_, err = store.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, ports.ErrRunNotFound)

	// The index entry is pruned lazily on the next listing.
	runs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	assert.False(t, mr.Exists("lattice:run:index"))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	rec := ports.RunRecord{
		ID:        "my-run",
		Backend:   "debug",
		StartedAt: time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, rec))

	assert.True(t, mr.Exists("custom:app:my-run"), "expected key with custom prefix")
	assert.True(t, mr.Exists("custom:app:index"), "expected index with custom prefix")

	runs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "my-run", runs[0].ID)
}

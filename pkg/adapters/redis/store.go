package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jdahm/lattice/pkg/ports"
)

// Store implements ports.RunStore using Redis. Records live as JSON
// strings under prefixed keys; a ZSET scored by start time keeps the
// listing order without scanning the keyspace.
type Store struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for run records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for run records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *goredis.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "lattice:run:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the record and indexes it by start time in one
// pipeline round trip.
func (s *Store) Save(ctx context.Context, rec ports.RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(rec.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), goredis.Z{
		Score:  float64(rec.StartedAt.UnixNano()) / float64(time.Second),
		Member: rec.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (ports.RunRecord, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == goredis.Nil {
			return ports.RunRecord{}, ports.ErrRunNotFound
		}
		return ports.RunRecord{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var rec ports.RunRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return ports.RunRecord{}, fmt.Errorf("failed to unmarshal run record: %w", err)
	}
	return rec, nil
}

// List returns all records ordered by start time. Index entries whose
// record has expired are pruned lazily along the way.
func (s *Store) List(ctx context.Context) ([]ports.RunRecord, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list run index: %w", err)
	}
	if len(ids) == 0 {
		return []ports.RunRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run records: %w", err)
	}

	runs := make([]ports.RunRecord, 0, len(ids))
	var stale []interface{}
	for i, val := range vals {
		raw, ok := val.(string)
		if !ok {
			// Record expired out from under its index entry.
			stale = append(stale, ids[i])
			continue
		}
		var rec ports.RunRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run record %q: %w", ids[i], err)
		}
		runs = append(runs, rec)
	}

	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired runs: %w", err)
		}
	}

	return runs, nil
}

// Delete removes the record and its index entry. Missing IDs are
// ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)

	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

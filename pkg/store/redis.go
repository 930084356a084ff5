package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix namespaces snapshot values.
	redisKeyPrefix = "coursemap:snapshot:"
	// redisIndexKey is the set of all saved snapshot names.
	redisIndexKey = "coursemap:snapshots"
)

// RedisStore implements a Redis-backed snapshot store.
// Snapshots are stored as JSON values under coursemap:snapshot:<name>, with
// a set of names at coursemap:snapshots serving as the index for List.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store using the given client.
// The caller owns the client and its lifecycle.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save stores the snapshot and registers its name in the index.
func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(snap.Name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	if err := s.client.SAdd(ctx, redisIndexKey, snap.Name).Err(); err != nil {
		return fmt.Errorf("redis index: %w", err)
	}
	return nil
}

// Get retrieves the snapshot saved under name.
func (s *RedisStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, redisKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}
	return &snap, nil
}

// List returns all indexed snapshots ordered by creation time.
// Index entries whose value has expired or been removed are skipped.
func (s *RedisStore) List(ctx context.Context) ([]*Snapshot, error) {
	names, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis index: %w", err)
	}

	var snaps []*Snapshot
	for _, name := range names {
		snap, err := s.Get(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].CreatedAt.Before(snaps[j].CreatedAt) })
	return snaps, nil
}

// Delete removes the snapshot and its index entry.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, redisKey(name)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if err := s.client.SRem(ctx, redisIndexKey, name).Err(); err != nil {
		return fmt.Errorf("redis index: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// redisKey returns the value key for a snapshot name.
func redisKey(name string) string { return redisKeyPrefix + name }

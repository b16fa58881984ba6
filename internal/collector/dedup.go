package collector

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Dedup answers whether a player or match has been seen before. First sight
// of an identifier marks it seen.
type Dedup interface {
	SeenPlayer(ctx context.Context, puuid string) (bool, error)
	SeenMatch(ctx context.Context, matchID string) (bool, error)
}

const (
	playerSetKey = "collector:puuids"
	matchSetKey  = "collector:matches"
)

// RedisDedup tracks seen identifiers in Redis sets so duplicate suppression
// survives restarts and is shared between collector instances.
type RedisDedup struct {
	client *redis.Client
}

func NewRedisDedup(client *redis.Client) *RedisDedup {
	return &RedisDedup{client: client}
}

func (d *RedisDedup) SeenPlayer(ctx context.Context, puuid string) (bool, error) {
	return d.seen(ctx, playerSetKey, puuid)
}

func (d *RedisDedup) SeenMatch(ctx context.Context, matchID string) (bool, error) {
	return d.seen(ctx, matchSetKey, matchID)
}

func (d *RedisDedup) seen(ctx context.Context, key, member string) (bool, error) {
	added, err := d.client.SAdd(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s membership: %w", key, err)
	}
	return added == 0, nil
}

// memoryDedup is the in-process fallback used by tests and single-shot runs
// without Redis.
type memoryDedup struct {
	players map[string]bool
	matches map[string]bool
}

func NewMemoryDedup() Dedup {
	return &memoryDedup{
		players: make(map[string]bool),
		matches: make(map[string]bool),
	}
}

func (d *memoryDedup) SeenPlayer(_ context.Context, puuid string) (bool, error) {
	seen := d.players[puuid]
	d.players[puuid] = true
	return seen, nil
}

func (d *memoryDedup) SeenMatch(_ context.Context, matchID string) (bool, error) {
	seen := d.matches[matchID]
	d.matches[matchID] = true
	return seen, nil
}

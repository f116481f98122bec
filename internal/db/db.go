package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	HashStore
	KVStore
	SetStore
	SortedSetStore
	ListStore
	Publisher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SetStore provides unordered set operations.
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)
}

// SortedSetStore provides score-ordered set operations.
type SortedSetStore interface {
	ZAdd(ctx context.Context, key, member string, score float64) error
	ZRem(ctx context.Context, key string, members ...string) error
	ZRevRange(ctx context.Context, key string, offset, limit int64) ([]string, error)
	ZRangeByScore(ctx context.Context, key, minScore, maxScore string) ([]string, error)
}

// ListStore provides capped append-only list operations.
type ListStore interface {
	RPushCapped(ctx context.Context, key string, maxLen int64, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// Publisher publishes messages on pub/sub channels.
type Publisher interface {
	Publish(ctx context.Context, channel string, message []byte) error
}

package redis

import (
	"context"

	"github.com/kailas-cloud/jobmatch/internal/db"
)

// SAdd adds members to a set. Existing members are ignored.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Sadd().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	return nil
}

// SRem removes members from a set. Missing members are ignored.
func (s *Store) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Srem().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSRem, Err: err}
	}
	return nil
}

// SMembers returns all members of a set. A missing key yields an empty slice.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Smembers().Key(key).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// SIsMember checks set membership.
func (s *Store) SIsMember(ctx context.Context, key, member string) (bool, error) {
	cmd := s.b().Sismember().Key(key).Member(member).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpSIsMember, Err: err}
	}
	return n == 1, nil
}

// ZAdd adds or updates a member with the given score.
func (s *Store) ZAdd(ctx context.Context, key, member string, score float64) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRem removes members from a sorted set.
func (s *Store) ZRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Zrem().Key(key).Member(members...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZRem, Err: err}
	}
	return nil
}

// ZRevRange returns up to limit members ordered by score descending, skipping offset.
func (s *Store) ZRevRange(ctx context.Context, key string, offset, limit int64) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	cmd := s.b().Zrevrange().Key(key).Start(offset).Stop(offset + limit - 1).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRevRange, Err: err}
	}
	return members, nil
}

// ZRangeByScore returns members with minScore <= score <= maxScore in ascending order.
// Bounds use Redis syntax: "(" prefix for exclusive, "-inf"/"+inf" for open ends.
func (s *Store) ZRangeByScore(ctx context.Context, key, minScore, maxScore string) ([]string, error) {
	cmd := s.b().Zrangebyscore().Key(key).Min(minScore).Max(maxScore).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRangeByScore, Err: err}
	}
	return members, nil
}

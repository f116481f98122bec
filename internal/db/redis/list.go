package redis

import (
	"context"

	"github.com/kailas-cloud/jobmatch/internal/db"
)

// RPushCapped appends values and trims the list to its newest maxLen entries.
func (s *Store) RPushCapped(ctx context.Context, key string, maxLen int64, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	push := s.b().Rpush().Key(key).Element(values...).Build()
	if err := s.do(ctx, push).Error(); err != nil {
		return &db.Error{Op: db.OpRPush, Err: err}
	}
	if maxLen <= 0 {
		return nil
	}
	trim := s.b().Ltrim().Key(key).Start(-maxLen).Stop(-1).Build()
	if err := s.do(ctx, trim).Error(); err != nil {
		return &db.Error{Op: db.OpLTrim, Err: err}
	}
	return nil
}

// LRange returns list elements between start and stop (inclusive, negative from the end).
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Lrange().Key(key).Start(start).Stop(stop).Build()
	values, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return values, nil
}

// Publish sends message on channel.
func (s *Store) Publish(ctx context.Context, channel string, message []byte) error {
	cmd := s.b().Publish().Channel(channel).Message(string(message)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpPublish, Err: err}
	}
	return nil
}

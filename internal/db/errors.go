package db

import "errors"

// ErrKeyNotFound is returned when a key or hash field does not exist.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants map to Valkey/Redis command names for error context.
const (
	OpDel           = "DEL"
	OpHDel          = "HDEL"
	OpHGet          = "HGET"
	OpHGetAll       = "HGETALL"
	OpHSet          = "HSET"
	OpHSetNX        = "HSETNX"
	OpExists        = "EXISTS"
	OpGet           = "GET"
	OpSet           = "SET"
	OpSAdd          = "SADD"
	OpSRem          = "SREM"
	OpSMembers      = "SMEMBERS"
	OpSIsMember     = "SISMEMBER"
	OpZAdd          = "ZADD"
	OpZRem          = "ZREM"
	OpZRevRange     = "ZREVRANGE"
	OpZRangeByScore = "ZRANGEBYSCORE"
	OpRPush         = "RPUSH"
	OpLTrim         = "LTRIM"
	OpLRange        = "LRANGE"
	OpPublish       = "PUBLISH"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

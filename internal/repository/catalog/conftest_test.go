package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// --- Redis mock ---

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn          func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn       func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn  func(ctx context.Context, keys []string) ([]map[string]string, error)
	existsFn        func(ctx context.Context, key string) (bool, error)
	delFn           func(ctx context.Context, key string) error
	zremFn          func(ctx context.Context, key string, members ...string) error
	zaddFn          func(ctx context.Context, key, member string, score float64) error
	zrevRangeFn     func(ctx context.Context, key string, offset, limit int64) ([]string, error)
	zrangeByScoreFn func(ctx context.Context, key, minScore, maxScore string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) ZRem(ctx context.Context, key string, members ...string) error {
	if m.zremFn != nil {
		return m.zremFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) ZAdd(ctx context.Context, key, member string, score float64) error {
	if m.zaddFn != nil {
		return m.zaddFn(ctx, key, member, score)
	}
	return nil
}

func (m *mockStore) ZRevRange(ctx context.Context, key string, offset, limit int64) ([]string, error) {
	if m.zrevRangeFn != nil {
		return m.zrevRangeFn(ctx, key, offset, limit)
	}
	return nil, nil
}

func (m *mockStore) ZRangeByScore(ctx context.Context, key, minScore, maxScore string) ([]string, error) {
	if m.zrangeByScoreFn != nil {
		return m.zrangeByScoreFn(ctx, key, minScore, maxScore)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

// hashes backs hgetAllMultiFn with an in-memory id -> hash table.
func hashes(t *testing.T, byKey map[string]map[string]string) func(context.Context, []string) ([]map[string]string, error) {
	t.Helper()
	return func(_ context.Context, keys []string) ([]map[string]string, error) {
		out := make([]map[string]string, len(keys))
		for i, k := range keys {
			out[i] = byKey[k]
		}
		return out, nil
	}
}

var testPosted = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func jobHash(id, title string, status job.Status) map[string]string {
	return map[string]string{
		"id":        id,
		"title":     title,
		"status":    string(status),
		"posted_at": "1740819600000",
	}
}

// --- Postgres fake ---

type fakeQuerier struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execFn != nil {
		return f.execFn(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.queryRowFn != nil {
		return f.queryRowFn(ctx, sql, args...)
	}
	return &fakeRows{err: pgx.ErrNoRows}
}

// fakeRows replays fixed rows. It also serves as a pgx.Row: Scan on a
// fresh fakeRows reads the first row, or returns err when there is none.
type fakeRows struct {
	rows   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.pos == 0 {
		if r.err != nil {
			return r.err
		}
		if !r.Next() {
			return pgx.ErrNoRows
		}
	}
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return errors.New("fakeRows: column count mismatch")
	}
	for i, v := range row {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func jobRow(id, title, titleEN, status string, posted time.Time) []any {
	return []any{id, title, titleEN, "Acme", "Paris", "IT", "Full-time", "", "", "", status, posted}
}

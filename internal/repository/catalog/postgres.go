package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// Schema creates the jobs table used by PostgresRepo.
const Schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	title_en     TEXT NOT NULL DEFAULT '',
	company      TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	job_type     TEXT NOT NULL DEFAULT '',
	salary_range TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	requirements TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'active',
	posted_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS jobs_status_posted_at_idx ON jobs (status, posted_at DESC);
`

const jobColumns = `id, title, title_en, company, location, category, job_type,
	salary_range, description, requirements, status, posted_at`

// querier is the subset of *pgxpool.Pool used by the catalog.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepo implements the job catalog on PostgreSQL.
type PostgresRepo struct {
	db querier
}

// NewPostgres creates a PostgreSQL catalog repository.
func NewPostgres(db querier) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// EnsureSchema creates the jobs table if it does not exist.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create jobs schema: %w", err)
	}
	return nil
}

// Upsert inserts a posting or replaces the stored one with the same id.
func (r *PostgresRepo) Upsert(ctx context.Context, j job.Job) error {
	d := j.Details()
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		   title = EXCLUDED.title, title_en = EXCLUDED.title_en,
		   company = EXCLUDED.company, location = EXCLUDED.location,
		   category = EXCLUDED.category, job_type = EXCLUDED.job_type,
		   salary_range = EXCLUDED.salary_range, description = EXCLUDED.description,
		   requirements = EXCLUDED.requirements, status = EXCLUDED.status,
		   posted_at = EXCLUDED.posted_at`,
		j.ID(), j.Title(), d.TitleEN, d.Company, d.Location, d.Category, d.JobType,
		d.SalaryRange, d.Description, d.Requirements, string(j.Status()), j.PostedAt(),
	)
	if err != nil {
		return fmt.Errorf("upsert job %s: %w", j.ID(), err)
	}
	return nil
}

// Delete removes a posting.
func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a posting by id.
func (r *PostgresRepo) Get(ctx context.Context, id string) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, domain.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("select job %s: %w", id, err)
	}
	return j, nil
}

// List returns up to f.PageSize() postings passing f, newest first.
func (r *PostgresRepo) List(ctx context.Context, f job.Filter) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE ($1::text = '' OR status = $1)
		 ORDER BY posted_at DESC
		 LIMIT $2`,
		string(f.Status), f.PageSize(),
	)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	return collectJobs(rows)
}

// PostedSince returns active postings posted strictly after t, oldest first.
func (r *PostgresRepo) PostedSince(ctx context.Context, t time.Time) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE status = 'active' AND posted_at > $1
		 ORDER BY posted_at ASC`,
		t,
	)
	if err != nil {
		return nil, fmt.Errorf("query jobs since %s: %w", t.Format(time.RFC3339), err)
	}
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]job.Job, error) {
	defer rows.Close()

	jobs := []job.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (job.Job, error) {
	var (
		id, title, status string
		d                 job.Details
		postedAt          time.Time
	)
	if err := row.Scan(
		&id, &title, &d.TitleEN, &d.Company, &d.Location, &d.Category, &d.JobType,
		&d.SalaryRange, &d.Description, &d.Requirements, &status, &postedAt,
	); err != nil {
		return job.Job{}, err
	}
	return job.Reconstruct(id, title, d, job.Status(status), postedAt.UTC()), nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

const (
	// pgChannel is the channel our triggers NOTIFY on (see migrations/)
	pgChannel = "logogen_events"
)

// Postgres is a logogen database implementation that uses postgres.
//
// Postgres isn't a document store but jobs are a flat document anyway; triggers on the
// jobs & health tables give us the "on created" events (see postgres_change_stream.go).
type Postgres struct {
	opts *Options
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgres returns a new Postgres database connection.
func NewPostgres(opts *Options, log zerolog.Logger) (*Postgres, error) {
	opts.SetDefaults()
	pool, err := pgxpool.New(context.Background(), expandURL(opts))
	return &Postgres{pool: pool, opts: opts, log: log}, err
}

// Close shuts down the database connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// Migrate applies all schema migrations.
func (p *Postgres) Migrate(ctx context.Context) error {
	return migratePostgres(ctx, expandURL(p.opts), p.log)
}

// InsertJob inserts a new job
func (p *Postgres) InsertJob(ctx context.Context, j *structs.Job) error {
	if j.CreatedAt == 0 {
		j.CreatedAt = timeNow()
		j.UpdatedAt = j.CreatedAt
	}
	qstr := fmt.Sprintf(`INSERT INTO %s (id, status, prompt, style, image_url, error_message, created_at, updated_at) 
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`, colJobs)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, qstr, toJobSqlArgs(j)...)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w job %s", errors.ErrAlreadyExists, j.ID)
	}
	return err
}

// Job returns the job with the given ID
func (p *Postgres) Job(ctx context.Context, id string) (*structs.Job, error) {
	qstr := fmt.Sprintf(`SELECT id, status, prompt, style, image_url, error_message, created_at, updated_at FROM %s WHERE id=$1;`, colJobs)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	j := structs.Job{}
	err = conn.QueryRow(ctx, qstr, id).Scan(
		&j.ID,
		&j.Status,
		&j.Prompt,
		&j.Style,
		&j.ImageURL,
		&j.ErrorMessage,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("%w job %s", errors.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// UpdateJob sets status, image_url, error_message & updated_at on the given job
func (p *Postgres) UpdateJob(ctx context.Context, id string, u *structs.JobUpdate) error {
	qstr := fmt.Sprintf(`UPDATE %s SET status=$1, image_url=$2, error_message=$3, updated_at=$4 WHERE id=$5;`, colJobs)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	info, err := conn.Exec(ctx, qstr, u.Status, u.ImageURL, u.ErrorMessage, timeNow(), id)
	if err != nil {
		return err
	}
	if info.RowsAffected() == 0 {
		return fmt.Errorf("%w job %s", errors.ErrNotFound, id)
	}
	return nil
}

// WriteHealth upserts a health row
func (p *Postgres) WriteHealth(ctx context.Context, h *structs.Health) error {
	if h.UpdatedAt == 0 {
		h.UpdatedAt = timeNow()
	}
	qstr := fmt.Sprintf(`INSERT INTO %s (id, updated_at) VALUES ($1, $2) 
	ON CONFLICT (id) DO UPDATE SET updated_at=EXCLUDED.updated_at;`, colHealth)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, qstr, h.ID, h.UpdatedAt)
	return err
}

// Changes returns a stream of changes to the database. This is implemented
// in pkg/database/postgres_change_stream.go
func (p *Postgres) Changes(ctx context.Context) (ChangeStream, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	_, err = conn.Exec(ctx, "LISTEN "+pgChannel)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &pgChangeStream{
		ctx:  ctx,
		conn: conn,
	}, nil
}

// toJobSqlArgs converts a job into args for an insert
func toJobSqlArgs(j *structs.Job) []interface{} {
	return []interface{}{
		j.ID,
		j.Status,
		j.Prompt,
		j.Style,
		j.ImageURL,
		j.ErrorMessage,
		j.CreatedAt,
		j.UpdatedAt,
	}
}

// timeNow returns the current time in unix seconds
var timeNow = func() int64 {
	return time.Now().Unix()
}

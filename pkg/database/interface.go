package database

import (
	"context"

	"github.com/voidshard/logogen/pkg/structs"
)

// ChangeStream yields writes to the jobs & health collections in the order the store reports them.
type ChangeStream interface {
	// Next blocks until the next change. A nil change with a nil error means the stream closed.
	Next() (*structs.Change, error)
	Close() error
}

// Database is the document store jobs live in.
type Database interface {
	// InsertJob creates a job document keyed by j.ID
	InsertJob(ctx context.Context, j *structs.Job) error

	// Job returns a job by ID, or errors.ErrNotFound
	Job(ctx context.Context, id string) (*structs.Job, error)

	// UpdateJob sets exactly the fields in the update (plus updated_at) of an existing job.
	// If no such job exists, errors.ErrNotFound is returned.
	UpdateJob(ctx context.Context, id string, u *structs.JobUpdate) error

	// WriteHealth upserts a health document.
	WriteHealth(ctx context.Context, h *structs.Health) error

	// Changes opens a stream of changes to jobs & health documents.
	Changes(ctx context.Context) (ChangeStream, error)

	// Migrate readies the store (tables, triggers, indexes).
	Migrate(ctx context.Context) error

	Close() error
}

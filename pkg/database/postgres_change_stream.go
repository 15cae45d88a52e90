package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	ie "github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

type pgChangeStream struct {
	ctx    context.Context
	conn   *pgxpool.Conn
	closed bool
}

// pgPayload is what our trigger function sends (see migrations/000002_notify.up.sql).
// Rows arrive as row_to_json, so the columns are snake case.
type pgPayload struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	Old   *pgRow `json:"old"`
	New   *pgRow `json:"new"`
}

type pgRow struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Prompt       string  `json:"prompt"`
	Style        string  `json:"style"`
	ImageURL     *string `json:"image_url"`
	ErrorMessage *string `json:"error_message"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

func (p *pgChangeStream) Next() (*structs.Change, error) {
	if p.closed {
		return nil, nil
	}

	notification, err := p.conn.Conn().WaitForNotification(p.ctx)
	if err != nil {
		return nil, err
	}

	return decodePgPayload(notification.Payload)
}

func (p *pgChangeStream) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.conn.Release()
	return nil
}

// decodePgPayload turns a NOTIFY payload into a Change
func decodePgPayload(raw string) (*structs.Change, error) {
	payload := pgPayload{}
	err := json.Unmarshal([]byte(raw), &payload)
	if err != nil {
		return nil, err
	}

	op := structs.ToOp(payload.Op)
	if op == "" {
		return nil, fmt.Errorf("%w operation %q", ie.ErrNotSupported, payload.Op)
	}

	row := payload.New
	if row == nil {
		row = payload.Old
	}

	switch payload.Table {
	case colJobs:
		ch := &structs.Change{Kind: structs.KindJob, Op: op}
		if row != nil {
			ch.ID = row.ID
		}
		if payload.New != nil {
			ch.Job = payload.New.job()
		}
		return ch, nil
	case colHealth:
		ch := &structs.Change{Kind: structs.KindHealth, Op: op}
		if row != nil {
			ch.ID = row.ID
			ch.Health = &structs.Health{ID: row.ID, UpdatedAt: row.UpdatedAt}
		}
		return ch, nil
	}

	return nil, fmt.Errorf("%w kind for table %s", ie.ErrNotSupported, payload.Table)
}

func (r *pgRow) job() *structs.Job {
	return &structs.Job{
		ID:           r.ID,
		Status:       structs.Status(r.Status),
		Prompt:       r.Prompt,
		Style:        structs.Style(r.Style),
		ImageURL:     r.ImageURL,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// isUniqueViolation returns if the error is postgres complaining about a duplicate key
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

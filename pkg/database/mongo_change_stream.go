package database

import (
	"context"
	"fmt"

	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	ie "github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

type mongoChangeStream struct {
	ctx    context.Context
	stream *mongod.ChangeStream
	closed bool
}

// mongoEvent is the subset of a change event we care about.
// For inserts & replaces fullDocument is the new document; we don't ask for update lookups.
type mongoEvent struct {
	OperationType string `bson:"operationType"`
	NS            struct {
		Coll string `bson:"coll"`
	} `bson:"ns"`
	DocumentKey struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument *document `bson:"fullDocument"`
}

func (m *mongoChangeStream) Next() (*structs.Change, error) {
	if m.closed {
		return nil, nil
	}
	if !m.stream.Next(m.ctx) {
		err := m.stream.Err()
		if err == nil {
			err = m.ctx.Err()
		}
		return nil, err
	}

	evt := mongoEvent{}
	err := m.stream.Decode(&evt)
	if err != nil {
		return nil, err
	}
	return toChange(&evt)
}

func (m *mongoChangeStream) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.stream.Close(context.Background())
}

// toChange converts a mongo change event into a Change
func toChange(evt *mongoEvent) (*structs.Change, error) {
	op := structs.ToOp(evt.OperationType)
	if op == "" {
		return nil, fmt.Errorf("%w operation %q", ie.ErrNotSupported, evt.OperationType)
	}

	switch evt.NS.Coll {
	case colJobs:
		ch := &structs.Change{Kind: structs.KindJob, Op: op, ID: evt.DocumentKey.ID}
		if evt.FullDocument != nil {
			ch.Job = evt.FullDocument.job()
		}
		return ch, nil
	case colHealth:
		ch := &structs.Change{Kind: structs.KindHealth, Op: op, ID: evt.DocumentKey.ID}
		if evt.FullDocument != nil {
			ch.Health = &structs.Health{ID: evt.FullDocument.ID, UpdatedAt: evt.FullDocument.UpdatedAt}
		}
		return ch, nil
	}

	return nil, fmt.Errorf("%w kind for collection %s", ie.ErrNotSupported, evt.NS.Coll)
}

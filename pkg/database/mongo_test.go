package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

func TestJobDocumentRoundTrip(t *testing.T) {
	msg := structs.FailureMessage
	in := &structs.Job{
		ID:           "j1",
		Status:       structs.FAILED,
		Prompt:       "cat logo",
		Style:        structs.StyleMascot,
		ErrorMessage: &msg,
		CreatedAt:    10,
		UpdatedAt:    20,
	}

	assert.Equal(t, in, toJobDocument(in).job())
}

func TestToJobUpdate(t *testing.T) {
	cases := []struct {
		Name   string
		Given  *structs.JobUpdate
		Expect bson.M
	}{
		{
			"Done",
			structs.NewJobDone("https://example.com/a.png"),
			bson.M{
				"status":       "done",
				"imageUrl":     "https://example.com/a.png",
				"errorMessage": nil,
				"updatedAt":    int64(99),
			},
		},
		{
			"Failed",
			structs.NewJobFailed(),
			bson.M{
				"status":       "failed",
				"imageUrl":     nil,
				"errorMessage": structs.FailureMessage,
				"updatedAt":    int64(99),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			result := toJobUpdate(c.Given, 99)

			set, ok := result["$set"].(bson.M)
			assert.True(t, ok)
			assert.Equal(t, 4, len(set))
			for k, v := range c.Expect {
				assert.Equal(t, v, deref(set[k]), k)
			}
		})
	}
}

func TestToChange(t *testing.T) {
	evt := &mongoEvent{OperationType: "insert"}
	evt.NS.Coll = colJobs
	evt.DocumentKey.ID = "j1"
	evt.FullDocument = &document{ID: "j1", Status: "processing", Prompt: "cat logo", Style: "flat"}

	result, err := toChange(evt)

	assert.Nil(t, err)
	assert.Equal(t, &structs.Change{
		Kind: structs.KindJob,
		Op:   structs.OpInsert,
		ID:   "j1",
		Job:  &structs.Job{ID: "j1", Status: structs.PROCESSING, Prompt: "cat logo", Style: "flat"},
	}, result)
}

func TestToChangeHealth(t *testing.T) {
	evt := &mongoEvent{OperationType: "delete"}
	evt.NS.Coll = colHealth
	evt.DocumentKey.ID = "h"

	result, err := toChange(evt)

	assert.Nil(t, err)
	assert.Equal(t, &structs.Change{Kind: structs.KindHealth, Op: structs.OpDelete, ID: "h"}, result)
}

func TestToChangeErrors(t *testing.T) {
	badOp := &mongoEvent{OperationType: "drop"}
	badOp.NS.Coll = colJobs

	badColl := &mongoEvent{OperationType: "insert"}
	badColl.NS.Coll = "users"

	for _, evt := range []*mongoEvent{badOp, badColl} {
		_, err := toChange(evt)
		assert.ErrorIs(t, err, errors.ErrNotSupported)
	}
}

func TestMongoEventDecodesNullDocument(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"operationType": "insert",
		"ns":            bson.M{"coll": colJobs},
		"documentKey":   bson.M{"_id": "j1"},
		"fullDocument":  nil,
	})
	assert.Nil(t, err)

	evt := mongoEvent{}
	err = bson.Unmarshal(raw, &evt)

	assert.Nil(t, err)
	assert.Nil(t, evt.FullDocument)
	assert.Equal(t, "j1", evt.DocumentKey.ID)
}

// deref unwraps *string values so we can compare against plain values
func deref(v interface{}) interface{} {
	if s, ok := v.(*string); ok {
		if s == nil {
			return nil
		}
		return *s
	}
	return v
}

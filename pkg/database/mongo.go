package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	ie "github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

// Mongo is a logogen database implementation that uses MongoDB.
//
// Change streams require a replica set (a single node replica set is fine).
type Mongo struct {
	opts   *Options
	client *mongod.Client
	db     *mongod.Database
	log    zerolog.Logger
}

// document is a job or health document; health documents only use ID & UpdatedAt.
type document struct {
	ID           string  `bson:"_id"`
	Status       string  `bson:"status,omitempty"`
	Prompt       string  `bson:"prompt,omitempty"`
	Style        string  `bson:"style,omitempty"`
	ImageURL     *string `bson:"imageUrl"`
	ErrorMessage *string `bson:"errorMessage"`
	CreatedAt    int64   `bson:"createdAt,omitempty"`
	UpdatedAt    int64   `bson:"updatedAt"`
}

// NewMongo returns a new MongoDB connection.
func NewMongo(opts *Options, log zerolog.Logger) (*Mongo, error) {
	opts.SetDefaults()
	client, err := mongod.Connect(options.Client().ApplyURI(expandURL(opts)))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &Mongo{opts: opts, client: client, db: client.Database(opts.Name), log: log}, nil
}

// Close disconnects from the database.
func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}

// Migrate creates the indexes we use.
func (m *Mongo) Migrate(ctx context.Context) error {
	_, err := m.db.Collection(colJobs).Indexes().CreateOne(ctx, mongod.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("migrate %s indexes: %w", colJobs, err)
	}
	m.log.Info().Str("database", m.opts.Name).Msg("database indexes ready")
	return nil
}

// InsertJob inserts a new job document
func (m *Mongo) InsertJob(ctx context.Context, j *structs.Job) error {
	if j.CreatedAt == 0 {
		j.CreatedAt = timeNow()
		j.UpdatedAt = j.CreatedAt
	}
	_, err := m.db.Collection(colJobs).InsertOne(ctx, toJobDocument(j))
	if mongod.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w job %s", ie.ErrAlreadyExists, j.ID)
	}
	return err
}

// Job returns the job with the given ID
func (m *Mongo) Job(ctx context.Context, id string) (*structs.Job, error) {
	doc := document{}
	err := m.db.Collection(colJobs).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongod.ErrNoDocuments) {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return doc.job(), nil
}

// UpdateJob $sets status, imageUrl, errorMessage & updatedAt; nothing else is touched.
func (m *Mongo) UpdateJob(ctx context.Context, id string, u *structs.JobUpdate) error {
	res, err := m.db.Collection(colJobs).UpdateOne(ctx, bson.M{"_id": id}, toJobUpdate(u, timeNow()))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	return nil
}

// WriteHealth upserts a health document
func (m *Mongo) WriteHealth(ctx context.Context, h *structs.Health) error {
	if h.UpdatedAt == 0 {
		h.UpdatedAt = timeNow()
	}
	_, err := m.db.Collection(colHealth).UpdateOne(
		ctx,
		bson.M{"_id": h.ID},
		bson.M{"$set": bson.M{"updatedAt": h.UpdatedAt}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// Changes watches the jobs & health collections. Implemented in pkg/database/mongo_change_stream.go
func (m *Mongo) Changes(ctx context.Context) (ChangeStream, error) {
	pipeline := mongod.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "ns.coll", Value: bson.D{{Key: "$in", Value: bson.A{colJobs, colHealth}}}},
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace", "delete"}}}},
		}}},
	}
	stream, err := m.db.Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return &mongoChangeStream{ctx: ctx, stream: stream}, nil
}

func toJobDocument(j *structs.Job) *document {
	return &document{
		ID:           j.ID,
		Status:       string(j.Status),
		Prompt:       j.Prompt,
		Style:        string(j.Style),
		ImageURL:     j.ImageURL,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func toJobUpdate(u *structs.JobUpdate, now int64) bson.M {
	// nil pointers are written as null, which is what we want for the cleared field
	return bson.M{"$set": bson.M{
		"status":       string(u.Status),
		"imageUrl":     u.ImageURL,
		"errorMessage": u.ErrorMessage,
		"updatedAt":    now,
	}}
}

func (d *document) job() *structs.Job {
	return &structs.Job{
		ID:           d.ID,
		Status:       structs.Status(d.Status),
		Prompt:       d.Prompt,
		Style:        structs.Style(d.Style),
		ImageURL:     d.ImageURL,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

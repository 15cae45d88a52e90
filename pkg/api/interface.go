package api

import (
	"context"

	"github.com/voidshard/logogen/pkg/structs"
)

// API represents the functions logogen servers should expose.
type API interface {
	// Implemented in logogen/internal/core.Service

	CreateJob(ctx context.Context, cjr *structs.CreateJobRequest) (*structs.Job, error)
	Job(ctx context.Context, id string) (*structs.Job, error)
	Health(ctx context.Context) (*structs.Health, error)
}

type Server interface {
	ServeForever(api API) error
	Close() error
}

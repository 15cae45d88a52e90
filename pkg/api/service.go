package api

import (
	"github.com/rs/zerolog"

	"github.com/voidshard/logogen/internal/core"
	"github.com/voidshard/logogen/pkg/artifact"
	"github.com/voidshard/logogen/pkg/database"
	"github.com/voidshard/logogen/pkg/structs"
)

// New connects to the database & builds the core service.
func New(dbOpts *database.Options, artOpts *artifact.Options, opts *structs.Options, log zerolog.Logger) (*core.Service, error) {
	art, err := artifact.NewResolver(artOpts, log.With().Str("component", "artifact").Logger())
	if err != nil {
		return nil, err
	}
	db, err := database.New(dbOpts, log.With().Str("component", "database").Logger())
	if err != nil {
		return nil, err
	}
	return NewAPI(db, art, opts, log)
}

// NewAPI builds the core service from an existing database & resolver.
func NewAPI(db database.Database, art artifact.Resolver, opts *structs.Options, log zerolog.Logger) (*core.Service, error) {
	return core.NewService(db, art, opts, log.With().Str("component", "service").Logger())
}

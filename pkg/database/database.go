package database

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voidshard/logogen/pkg/errors"
)

const (
	// collections (or tables) we read & write
	colJobs   = "jobs"
	colHealth = "health"
)

// New connects to the database the URL points at.
func New(opts *Options, log zerolog.Logger) (Database, error) {
	opts.SetDefaults()
	opts.URL = expandURL(opts)

	scheme, _, _ := strings.Cut(opts.URL, "://")
	switch scheme {
	case "postgres", "postgresql":
		return NewPostgres(opts, log)
	case "mongodb", "mongodb+srv":
		return NewMongo(opts, log)
	default:
		return nil, fmt.Errorf("%w database scheme %q", errors.ErrNotSupported, scheme)
	}
}

// expandURL substitutes the username & password env vars into the URL
func expandURL(opts *Options) string {
	u := strings.Replace(opts.URL, "$"+opts.UsernameEnvVar, os.Getenv(opts.UsernameEnvVar), 1)
	return strings.Replace(u, "$"+opts.PasswordEnvVar, os.Getenv(opts.PasswordEnvVar), 1)
}

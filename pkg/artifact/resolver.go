// Package artifact decides what URL a finished job points at.
package artifact

import (
	"context"
	"math/rand"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

var placeholders = []string{
	"https://picsum.photos/seed/logo1/512/512",
	"https://picsum.photos/seed/logo2/512/512",
	"https://picsum.photos/seed/logo3/512/512",
	"https://picsum.photos/seed/logo4/512/512",
	"https://picsum.photos/seed/logo5/512/512",
}

// Resolver returns the artifact URL for a job.
type Resolver interface {
	Resolve(ctx context.Context, jobID string) (string, error)
}

// Placeholder is a Resolver that hands out one of a fixed set of placeholder images.
//
// If object store credentials are configured we build a client for a future upload path, but
// for now every call still returns a placeholder. Repeated calls for the same job may return
// different URLs.
type Placeholder struct {
	opts   *Options
	client *minio.Client
	log    zerolog.Logger

	// pick returns a random int in [0, n)
	pick func(n int) int
}

// NewResolver returns a Placeholder resolver. A client is only built if we have credentials.
func NewResolver(opts *Options, log zerolog.Logger) (*Placeholder, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()

	p := &Placeholder{opts: opts, log: log, pick: rand.Intn}
	if !opts.hasCredentials() {
		log.Debug().Msg("object store credentials not set, using placeholder artifacts")
		return p, nil
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: true,
		Region: "auto",
	})
	if err != nil {
		return nil, err
	}
	p.client = client
	return p, nil
}

// Resolve returns a URL for the given job.
func (p *Placeholder) Resolve(ctx context.Context, jobID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.client != nil && p.opts.PublicURL != "" {
		// TODO: upload a generated image to opts.Bucket and return opts.PublicURL + key
		p.log.Debug().Str("job_id", jobID).Str("bucket", p.opts.Bucket).Msg("object store upload not implemented, using placeholder")
	}
	return placeholders[p.pick(len(placeholders))], nil
}

// HasClient returns if an object store client was built.
func (p *Placeholder) HasClient() bool {
	return p.client != nil
}

// Placeholders returns a copy of the placeholder URLs we hand out.
func Placeholders() []string {
	out := make([]string, len(placeholders))
	copy(out, placeholders)
	return out
}

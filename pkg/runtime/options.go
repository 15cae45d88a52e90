package runtime

import (
	"crypto/tls"
	"time"
)

const (
	defConcurrency       = 10
	defInvocationTimeout = 120 * time.Second
	defRetention         = 24 * time.Hour
)

// Options are options for the runtime.
type Options struct {
	// URL encodes how we'll connect to redis, eg. redis://:password@localhost:6379/0
	URL string

	// TLSConfig needed to connect to redis (optional).
	TLSConfig *tls.Config

	// Concurrency is the number of invocations served at once.
	Concurrency int

	// InvocationTimeout bounds a single invocation.
	InvocationTimeout time.Duration

	// Retention is how long a finished task (and so its id) is kept. A change dispatched
	// again inside this window is dropped as a duplicate.
	Retention time.Duration
}

func (o *Options) SetDefaults() {
	if o.Concurrency <= 0 {
		o.Concurrency = defConcurrency
	}
	if o.InvocationTimeout <= 0 {
		o.InvocationTimeout = defInvocationTimeout
	}
	if o.Retention <= 0 {
		o.Retention = defRetention
	}
}

package structs

import (
	"time"
)

// Options passed to the core service on creation
type Options struct {
	// EventRoutines is the number of goroutines handling changes from the database.
	// Zero means we don't listen for changes at all (ie. API only).
	EventRoutines int64

	// InvocationTimeout bounds a single trigger invocation. It must exceed the longest
	// simulated delay plus the time to resolve an artifact & write the result.
	InvocationTimeout time.Duration

	// ReconnectDelay is how long we wait before reopening a broken change stream.
	ReconnectDelay time.Duration
}

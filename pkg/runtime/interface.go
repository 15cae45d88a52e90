package runtime

import (
	"context"

	"github.com/voidshard/logogen/pkg/structs"
)

// Handler runs a single trigger invocation for a change.
type Handler func(ctx context.Context, ch *structs.Change) error

// Runtime hosts trigger invocations outside of the process that reads the change stream.
//
// Delivery is at most once; nothing is retried.
type Runtime interface {
	// Dispatch hands a change to the runtime. Dispatching the same change again within
	// Options.Retention of the first results in a single invocation.
	Dispatch(ctx context.Context, ch *structs.Change) error

	// Serve invokes handler for dispatched changes until ctx is done.
	Serve(ctx context.Context, handler Handler) error

	Close() error
}

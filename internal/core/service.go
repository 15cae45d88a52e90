package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voidshard/logogen/pkg/artifact"
	"github.com/voidshard/logogen/pkg/database"
	"github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

// Rand is the source of randomness for the simulation.
type Rand interface {
	// Intn returns an int in [0, n)
	Intn(n int) int

	// Float64 returns a float in [0, 1)
	Float64() float64
}

// Dispatcher hands a change to whatever hosts trigger invocations.
//
// A Dispatcher must deliver each change at most once; HandleJobCreated relies on the
// status guard alone if a creation event is replayed.
type Dispatcher interface {
	Dispatch(ctx context.Context, ch *structs.Change) error
}

// globalRand uses math/rand's top level (goroutine safe) source.
type globalRand struct{}

func (globalRand) Intn(n int) int   { return rand.Intn(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

type Service struct {
	db   database.Database
	art  artifact.Resolver
	opts *structs.Options
	log  zerolog.Logger

	rng        Rand
	sleep      func(ctx context.Context, d time.Duration) error
	dispatcher Dispatcher
}

func NewService(db database.Database, art artifact.Resolver, opts *structs.Options, log zerolog.Logger) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("%w database is required", errors.ErrInvalidArg)
	}
	if art == nil {
		return nil, fmt.Errorf("%w artifact resolver is required", errors.ErrInvalidArg)
	}
	return &Service{
		db:    db,
		art:   art,
		opts:  setDefaults(opts),
		log:   log,
		rng:   globalRand{},
		sleep: sleepContext,
	}, nil
}

// SetDispatcher routes changes through d rather than invoking handlers in process.
func (c *Service) SetDispatcher(d Dispatcher) {
	c.dispatcher = d
}

func (c *Service) Close() error {
	return c.db.Close()
}

// Run listens to database changes until ctx is done, dispatching each one.
//
// Rather than have each worker routine listen for changes we have a single routine
// that reads the stream and passes changes to EventRoutines workers.
func (c *Service) Run(ctx context.Context) error {
	if c.opts.EventRoutines <= 0 {
		<-ctx.Done()
		return nil
	}

	work := make(chan *structs.Change)
	var wg sync.WaitGroup
	for i := int64(0); i < c.opts.EventRoutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.handleEvents(ctx, work)
		}()
	}
	defer wg.Wait()
	defer close(work)

	// Listen to changes. Reopen on error(s) until we're told to stop.
	for {
		stream, err := c.db.Changes(ctx)
		if err == nil {
			err = c.pump(ctx, stream, work)
			stream.Close()
		}
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			c.log.Error().Err(err).Dur("retry_in", c.opts.ReconnectDelay).Msg("change stream failed")
		}
		if sleepContext(ctx, c.opts.ReconnectDelay) != nil {
			return nil
		}
	}
}

// pump moves changes from the stream to the workers until the stream ends or errors.
func (c *Service) pump(ctx context.Context, stream database.ChangeStream, work chan<- *structs.Change) error {
	for {
		evt, err := stream.Next()
		if err != nil {
			return err
		}
		if evt == nil {
			return nil
		}
		select {
		case work <- evt:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Service) handleEvents(ctx context.Context, work <-chan *structs.Change) {
	for evt := range work {
		var err error
		if c.dispatcher != nil {
			err = c.dispatcher.Dispatch(ctx, evt)
		} else {
			err = c.Invoke(ctx, evt)
		}
		if err != nil {
			c.log.Error().Err(err).Str("kind", string(evt.Kind)).Str("id", evt.ID).Msg("invocation failed")
		}
	}
}

// Invoke runs a single trigger invocation for the change, bounded by the invocation timeout.
func (c *Service) Invoke(ctx context.Context, evt *structs.Change) error {
	ictx, cancel := context.WithTimeout(ctx, c.opts.InvocationTimeout)
	defer cancel()
	return c.Route(ictx, evt)
}

// Route calls the handler for the given change. Changes nothing handles are ignored.
func (c *Service) Route(ctx context.Context, evt *structs.Change) error {
	if evt == nil {
		return nil
	}
	switch evt.Kind {
	case structs.KindJob:
		if evt.Op != structs.OpInsert {
			return nil
		}
		return c.HandleJobCreated(ctx, evt)
	case structs.KindHealth:
		return c.HandleHealth(ctx, evt)
	default:
		return fmt.Errorf("%w %s unknown kind", errors.ErrNotSupported, evt.Kind)
	}
}

// sleepContext waits for d, or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

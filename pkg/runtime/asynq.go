package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	ierr "github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

const (
	asyncWorkQueue  = "logogen:triggers"
	asyncTaskPrefix = "logogen:"
)

type Asynq struct {
	opts *Options
	log  zerolog.Logger

	conn asynq.RedisConnOpt
	cli  *asynq.Client

	lock sync.Mutex
	srv  *asynq.Server
}

func NewAsynqRuntime(opts *Options, log zerolog.Logger) (*Asynq, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()

	conn, err := redisConn(opts)
	if err != nil {
		return nil, err
	}
	return &Asynq{
		opts: opts,
		log:  log,
		conn: conn,
		cli:  asynq.NewClient(conn),
	}, nil
}

func (a *Asynq) Close() error {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.srv != nil {
		a.srv.Shutdown()
		a.srv = nil
	}
	return a.cli.Close()
}

// Dispatch enqueues one task per change. Tasks are never retried.
func (a *Asynq) Dispatch(ctx context.Context, ch *structs.Change) error {
	task, err := newTask(ch)
	if err != nil {
		return err
	}
	info, err := a.cli.EnqueueContext(ctx, task, taskOptions(ch, a.opts)...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		a.log.Debug().Str("task_id", taskID(ch)).Msg("change already dispatched, skipping")
		return nil
	} else if err != nil {
		return err
	}
	a.log.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("dispatched")
	return nil
}

// Serve processes dispatched changes until ctx is done.
func (a *Asynq) Serve(ctx context.Context, handler Handler) error {
	a.lock.Lock()
	if a.srv != nil {
		a.lock.Unlock()
		return fmt.Errorf("%w runtime already serving", ierr.ErrInvalidState)
	}
	srv := asynq.NewServer(a.conn, asynq.Config{
		Concurrency: a.opts.Concurrency,
		Queues:      map[string]int{asyncWorkQueue: 1},
		Logger:      &asynqLogger{log: a.log},
	})
	a.srv = srv
	a.lock.Unlock()

	mux := asynq.NewServeMux()
	for _, k := range []structs.Kind{structs.KindJob, structs.KindHealth} {
		mux.HandleFunc(taskType(k), func(ctx context.Context, t *asynq.Task) error {
			ch, err := decodeTask(t)
			if err != nil {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			err = handler(ctx, ch)
			if err != nil {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return nil
		})
	}

	err := srv.Start(mux)
	if err != nil {
		return err
	}
	a.log.Info().Str("queue", asyncWorkQueue).Int("concurrency", a.opts.Concurrency).Msg("serving")

	<-ctx.Done()

	a.lock.Lock()
	defer a.lock.Unlock()
	if a.srv != nil {
		a.srv.Shutdown()
		a.srv = nil
	}
	return nil
}

// redisConn parses the redis URL, applying our TLS config if given.
func redisConn(opts *Options) (asynq.RedisConnOpt, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("%w redis url is required", ierr.ErrInvalidArg)
	}
	conn, err := asynq.ParseRedisURI(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("%w redis url: %v", ierr.ErrInvalidArg, err)
	}
	if opts.TLSConfig == nil {
		return conn, nil
	}
	switch c := conn.(type) {
	case asynq.RedisClientOpt:
		c.TLSConfig = opts.TLSConfig
		return c, nil
	case asynq.RedisFailoverClientOpt:
		c.TLSConfig = opts.TLSConfig
		return c, nil
	}
	return conn, nil
}

// taskOptions run a task once, then keep it (and its id) around for opts.Retention
func taskOptions(ch *structs.Change, opts *Options) []asynq.Option {
	return []asynq.Option{
		asynq.Queue(asyncWorkQueue),
		asynq.TaskID(taskID(ch)),
		asynq.MaxRetry(0),
		asynq.Timeout(opts.InvocationTimeout),
		asynq.Retention(opts.Retention),
	}
}

// taskID is unique per change, so a change dispatched twice is enqueued once
func taskID(ch *structs.Change) string {
	return strings.ToLower(fmt.Sprintf("%s:%s:%s", ch.Kind, ch.ID, ch.Op))
}

func taskType(k structs.Kind) string {
	return asyncTaskPrefix + strings.ToLower(string(k))
}

func newTask(ch *structs.Change) (*asynq.Task, error) {
	if ch == nil {
		return nil, fmt.Errorf("%w no change given", ierr.ErrInvalidArg)
	}
	data, err := json.Marshal(ch)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType(ch.Kind), data), nil
}

func decodeTask(t *asynq.Task) (*structs.Change, error) {
	ch := &structs.Change{}
	err := json.Unmarshal(t.Payload(), ch)
	if err != nil {
		return nil, fmt.Errorf("%w bad task payload: %v", ierr.ErrInvalidArg, err)
	}
	return ch, nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/voidshard/logogen/internal/utils"
	"github.com/voidshard/logogen/pkg/api"
	"github.com/voidshard/logogen/pkg/runtime"
)

const (
	docTrigger     = `Run the job trigger`
	docTriggerLong = `Run the job trigger. Created jobs are read from the database change stream and
processed in this process, or, if --redis-url is given, dispatched to & served from asynq.`
)

type optsTrigger struct {
	optsGeneral
	optsDatabase
	optsArtifact
	optsRuntime

	ServeOnly    bool `long:"serve-only" env:"SERVE_ONLY" description:"With --redis-url, serve invocations but don't read the change stream"`
	DispatchOnly bool `long:"dispatch-only" env:"DISPATCH_ONLY" description:"With --redis-url, read the change stream but don't serve invocations"`
}

func (c *optsTrigger) Execute(args []string) error {
	// This runs the trigger; that is something that listens to the database for new jobs and
	// walks each one through to a final state.
	log := utils.NewLogger(c.Debug)

	opts := api.OptionsServerDefault()
	if c.ServeOnly {
		opts = api.OptionsClientDefault()
	}

	svc, err := api.New(c.optsDatabase.options(), c.optsArtifact.options(), opts, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.RedisURL == "" {
		log.Info().Msg("running trigger in process")
		return svc.Run(ctx)
	}

	tlsCfg, err := utils.TLSConfig(c.RedisTLSCaCert, c.RedisTLSCert, c.RedisTLSKey)
	if err != nil {
		return err
	}
	rt, err := runtime.NewAsynqRuntime(&runtime.Options{
		URL:               c.RedisURL,
		TLSConfig:         tlsCfg,
		Concurrency:       c.Concurrency,
		InvocationTimeout: opts.InvocationTimeout,
	}, log.With().Str("component", "runtime").Logger())
	if err != nil {
		return err
	}
	defer rt.Close()
	svc.SetDispatcher(rt)

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return svc.Run(ctx)
	})
	if !c.DispatchOnly {
		grp.Go(func() error {
			return rt.Serve(ctx, svc.Route)
		})
	}
	return grp.Wait()
}

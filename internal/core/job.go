package core

import (
	"context"
	"fmt"
	"time"

	"github.com/voidshard/logogen/pkg/structs"
)

// HandleJobCreated moves a newly created job from processing to a final state.
//
// Jobs with no snapshot, or that aren't processing, are skipped without a write. Otherwise we
// wait a random 30-60s, draw an outcome and write exactly one terminal update. Nothing is
// retried; if the write fails the job is left processing and the error is returned.
func (c *Service) HandleJobCreated(ctx context.Context, evt *structs.Change) error {
	log := c.log.With().Str("job_id", evt.ID).Logger()

	if evt.Job.IsEmpty() {
		log.Info().Msg("no data found, skipping")
		return nil
	}
	if evt.Job.Status != structs.PROCESSING {
		log.Info().Str("status", string(evt.Job.Status)).Msg("status is not processing, skipping")
		return nil
	}

	log.Info().Str("prompt", orNA(evt.Job.Prompt)).Str("style", orNA(string(evt.Job.Style))).Msg("starting processing")

	delay := c.delay()
	log.Info().Dur("delay", delay).Msg("waiting")
	err := c.sleep(ctx, delay)
	if err != nil {
		// nb. we haven't written anything, the job is still processing
		return fmt.Errorf("job %s interrupted before completion: %w", evt.ID, err)
	}

	var update *structs.JobUpdate
	if c.succeeded() {
		url, err := c.art.Resolve(ctx, evt.ID)
		if err != nil {
			return fmt.Errorf("resolve artifact for job %s: %w", evt.ID, err)
		}
		update = structs.NewJobDone(url)
	} else {
		update = structs.NewJobFailed()
	}

	err = c.db.UpdateJob(ctx, evt.ID, update)
	if err != nil {
		return fmt.Errorf("write %s status for job %s: %w", update.Status, evt.ID, err)
	}

	if update.Status == structs.DONE {
		log.Info().Str("image_url", *update.ImageURL).Msg("completed successfully")
	} else {
		log.Info().Msg("failed (simulated failure)")
	}
	return nil
}

// delay returns a whole number of seconds in [minDelaySeconds, maxDelaySeconds]
func (c *Service) delay() time.Duration {
	return time.Duration(minDelaySeconds+c.rng.Intn(maxDelaySeconds-minDelaySeconds+1)) * time.Second
}

// succeeded draws the outcome of a simulated generation
func (c *Service) succeeded() bool {
	return c.rng.Float64() < successRate
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

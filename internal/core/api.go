package core

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/voidshard/logogen/internal/utils"
	"github.com/voidshard/logogen/pkg/errors"
	"github.com/voidshard/logogen/pkg/structs"
)

// CreateJob creates a new job in the processing state; the trigger picks it up from there.
func (c *Service) CreateJob(ctx context.Context, cjr *structs.CreateJobRequest) (*structs.Job, error) {
	err := validateCreateJobRequest(cjr)
	if err != nil {
		return nil, err
	}

	job := &structs.Job{
		ID:     utils.NewRandomID(),
		Status: structs.PROCESSING,
		Prompt: strings.TrimSpace(cjr.Prompt),
		Style:  cjr.Style,
	}
	err = c.db.InsertJob(ctx, job)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("job_id", job.ID).Msg("job created")
	return job, nil
}

// Job returns a job by ID.
func (c *Service) Job(ctx context.Context, id string) (*structs.Job, error) {
	if !utils.IsValidID(id) {
		return nil, fmt.Errorf("%w job id %q", errors.ErrInvalidArg, id)
	}
	return c.db.Job(ctx, id)
}

// Health writes the health document, which in turn fires the health probe.
func (c *Service) Health(ctx context.Context) (*structs.Health, error) {
	h := &structs.Health{ID: healthDocID}
	return h, c.db.WriteHealth(ctx, h)
}

func validateCreateJobRequest(cjr *structs.CreateJobRequest) error {
	if cjr == nil {
		return fmt.Errorf("%w no job given", errors.ErrInvalidArg)
	}
	prompt := strings.TrimSpace(cjr.Prompt)
	if prompt == "" {
		return fmt.Errorf("%w prompt is required", errors.ErrInvalidArg)
	}
	if utf8.RuneCountInString(prompt) > maxPromptLength {
		return fmt.Errorf("%w prompt is longer than %d", errors.ErrMaxExceeded, maxPromptLength)
	}
	if !structs.IsKnownStyle(cjr.Style) {
		return fmt.Errorf("%w unknown style %q", errors.ErrInvalidArg, cjr.Style)
	}
	return nil
}

package core

import (
	"context"

	"github.com/voidshard/logogen/pkg/structs"
)

// HandleHealth is a smoke test hook; any write to a health document logs & nothing else.
func (c *Service) HandleHealth(ctx context.Context, evt *structs.Change) error {
	c.log.Info().Str("id", evt.ID).Str("op", string(evt.Op)).Msg("Health check: OK")
	return nil
}

package main

import (
	"context"
	"time"

	"github.com/voidshard/logogen/internal/utils"
	"github.com/voidshard/logogen/pkg/database"
)

const (
	docMigrate = `Create or update the database schema`
)

type optsMigrate struct {
	optsGeneral
	optsDatabase

	Timeout time.Duration `long:"timeout" env:"TIMEOUT" description:"Give up after this long" default:"1m"`
}

func (c *optsMigrate) Execute(args []string) error {
	log := utils.NewLogger(c.Debug)

	db, err := database.New(c.optsDatabase.options(), log.With().Str("component", "database").Logger())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	err = db.Migrate(ctx)
	if err != nil {
		return err
	}
	log.Info().Msg("migrated")
	return nil
}

package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migratePostgres brings the schema at url up to date. If ctx is done mid way the
// current migration is allowed to finish and the rest are abandoned.
func migratePostgres(ctx context.Context, url string, log zerolog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.PingContext(ctx)
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-stop:
		}
	}()

	err = m.Up()
	if ctx.Err() != nil {
		return fmt.Errorf("migration interrupted: %w", ctx.Err())
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("database schema up to date")
		return nil
	}
	if err != nil {
		return err
	}

	version, _, _ := m.Version()
	log.Info().Uint("version", version).Msg("database schema migrated")
	return nil
}

package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard/internal/config"
	"github.com/timecardhq/timecard/internal/localstate"
	storepkg "github.com/timecardhq/timecard/internal/store"
	storepg "github.com/timecardhq/timecard/internal/store/postgres"
	storesq "github.com/timecardhq/timecard/internal/store/sqlite"
)

// NewStore builds a store.Store for the configured driver and ensures the
// schema exists before handing it out.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storepg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store ready")
		return storepg.NewWithDB(db), nil

	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			var err error
			path, err = localstate.DBPath()
			if err != nil {
				return nil, err
			}
		}
		db, err := storesq.Open(path)
		if err != nil {
			return nil, err
		}
		if err := storesq.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", path).Msg("store ready")
		return storesq.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

package storage

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/quotesync/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotesync/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quotesync/internal/platform/config"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// Store bundles every persistence port one driver implements.
type Store interface {
	ports.QuoteStore
	ports.PreferenceStore
	ports.ConflictLog
	ports.HealthChecker

	Close() error
}

// Open returns the driver named in cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}

		return db, nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"todo/internal/backend/filekv"
	"todo/internal/backend/memkv"
	"todo/internal/backend/sqlitekv"
	"todo/internal/config"
	"todo/internal/storage"
)

// OpenBackend opens the storage backend selected by cfg, creating its
// directory if needed.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error) {
	backend := cfg.Settings.Storage.Backend
	if backend == config.BackendMemory {
		return memkv.New(), nil
	}

	path := cfg.StoragePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	logger.Debug("opening storage", "backend", backend, "path", path)

	switch backend {
	case config.BackendSQLite:
		return sqlitekv.Open(path, logger)
	default:
		return filekv.Open(path)
	}
}

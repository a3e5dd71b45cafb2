// Package cmd wires shared infrastructure for the binaries.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/canvaslab/flowcanvas/pkg/persistence"
	"github.com/canvaslab/flowcanvas/pkg/persistence/file"
	"github.com/canvaslab/flowcanvas/pkg/persistence/postgresql"
)

// NewPersistence builds the persistence backend for the given database URL.
// postgres:// and postgresql:// select PostgreSQL; anything else is treated
// as a file root.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		p, err := postgresql.NewPersistence(ctx, databaseURL, logger)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to initialize PostgreSQL persistence", "error", err)
			panic(err)
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}

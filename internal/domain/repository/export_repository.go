package repository

import (
	"context"
	"errors"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

// ErrExportNotFound is returned for unknown, expired or already downloaded exports
var ErrExportNotFound = errors.New("export not found")

// ExportRepository defines the interface for parked export buffers
type ExportRepository interface {
	// Save parks an export and returns its token
	Save(ctx context.Context, export *entity.Export) (string, error)

	// Take returns the export for a token and removes it, so each export
	// can be downloaded once
	Take(ctx context.Context, token string) (*entity.Export, error)
}

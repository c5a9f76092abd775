package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/damon-houk/fxrate-lookup/internal/application/export"
	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/middleware"
)

// ExportService hands out parked row lists as CSV files
type ExportService struct {
	exports repository.ExportRepository
	logger  logger.Logger
}

// NewExportService creates a new export service
func NewExportService(exports repository.ExportRepository, log logger.Logger) *ExportService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExportService{
		exports: exports,
		logger:  log,
	}
}

// Download consumes the export for token and returns it with its CSV bytes.
// A token can be downloaded once.
func (s *ExportService) Download(ctx context.Context, token string) (*entity.Export, []byte, error) {
	exp, err := s.exports.Take(ctx, token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve export: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, exp.RowList()); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Export downloaded", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"filename":   exp.Filename,
		"rows":       len(exp.Rows),
	})

	return exp, buf.Bytes(), nil
}

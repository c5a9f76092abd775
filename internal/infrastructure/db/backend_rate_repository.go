// Package db internal/infrastructure/db/backend_rate_repository.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
	"github.com/damon-houk/fxrate-lookup/internal/domain/service"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
)

// BackendRateRepository implements the RateRepository interface on top of the rate backend
type BackendRateRepository struct {
	backend service.RateBackend
	logger  logger.Logger
}

// NewBackendRateRepository creates a new repository for exchange rates
func NewBackendRateRepository(backend service.RateBackend, log logger.Logger) repository.RateRepository {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BackendRateRepository{
		backend: backend,
		logger:  log,
	}
}

// ListCurrencies returns the currency codes supported by the backend
func (r *BackendRateRepository) ListCurrencies(ctx context.Context) ([]string, error) {
	start := time.Now()

	currencies, err := r.backend.FetchCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve currencies: %w", err)
	}

	r.logger.Info("Currencies retrieved", map[string]interface{}{
		"count":       len(currencies),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return currencies, nil
}

// FindRates returns the backend payload for a rate request
func (r *BackendRateRepository) FindRates(ctx context.Context, req entity.RateRequest) (*entity.RatePayload, error) {
	start := time.Now()

	r.logger.Info("Finding exchange rates", map[string]interface{}{
		"mode":       string(req.Mode),
		"currency":   req.Currency,
		"date":       req.Date,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	})

	payload, err := r.backend.FetchRates(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exchange rates: %w", err)
	}

	r.logger.Info("Exchange rates found", map[string]interface{}{
		"currency":    req.Currency,
		"kind":        payload.Kind.String(),
		"entries":     len(payload.Rates),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return payload, nil
}

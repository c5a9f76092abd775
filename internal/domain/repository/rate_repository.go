// Package repository internal/domain/repository/rate_repository.go
package repository

import (
	"context"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

// RateRepository defines the interface for exchange rate lookups
type RateRepository interface {
	// ListCurrencies returns the supported currency codes in backend order
	ListCurrencies(ctx context.Context) ([]string, error)

	// FindRates returns the backend response for a rate request
	FindRates(ctx context.Context, req entity.RateRequest) (*entity.RatePayload, error)
}

package service

import (
	"context"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

// RateBackend defines the interface for the external rate service
type RateBackend interface {
	// FetchCurrencies retrieves the list of supported currency codes
	FetchCurrencies(ctx context.Context) ([]string, error)

	// FetchRates retrieves the rate payload for a request
	FetchRates(ctx context.Context, req entity.RateRequest) (*entity.RatePayload, error)
}

// Package service internal/application/service/currency_service.go
package service

import (
	"context"

	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/middleware"
)

// CurrencyService loads the currency codes offered by the lookup form
type CurrencyService struct {
	rates  repository.RateRepository
	logger logger.Logger
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(rates repository.RateRepository, log logger.Logger) *CurrencyService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CurrencyService{
		rates:  rates,
		logger: log,
	}
}

// LoadCurrencies returns the currency codes in backend order. Failures are logged
// and yield an empty list so the rest of the page still renders.
func (s *CurrencyService) LoadCurrencies(ctx context.Context) []string {
	currencies, err := s.rates.ListCurrencies(ctx)
	if err != nil {
		s.logger.Error("Error fetching currencies", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
		return []string{}
	}

	return currencies
}

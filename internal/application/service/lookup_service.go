// Package service internal/application/service/lookup_service.go
package service

import (
	"context"
	"time"

	"github.com/damon-houk/fxrate-lookup/internal/application/render"
	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/middleware"
)

// BuildRateRequest turns submitted form values into a rate request. It has no side
// effects; a *entity.ValidationError means nothing must be sent.
func BuildRateRequest(form entity.FormValues) (entity.RateRequest, error) {
	mode, ok := entity.ParseQueryMode(form.QueryType)
	if !ok {
		return entity.RateRequest{}, &entity.ValidationError{Message: entity.MsgUnknownQueryType}
	}

	switch mode {
	case entity.ModeRange:
		if form.StartDate == "" || form.EndDate == "" {
			return entity.RateRequest{}, &entity.ValidationError{Message: entity.MsgMissingDateRange}
		}
		return entity.RateRequest{
			Mode:      entity.ModeRange,
			Currency:  form.Currency,
			StartDate: form.StartDate,
			EndDate:   form.EndDate,
		}, nil
	default:
		if form.Date == "" {
			return entity.RateRequest{}, &entity.ValidationError{Message: entity.MsgMissingDate}
		}
		return entity.RateRequest{
			Mode:     entity.ModeSingle,
			Currency: form.Currency,
			Date:     form.Date,
		}, nil
	}
}

// LookupService handles submissions of the lookup form
type LookupService struct {
	rates   repository.RateRepository
	exports repository.ExportRepository
	logger  logger.Logger
	now     func() time.Time
}

// NewLookupService creates a new lookup service
func NewLookupService(rates repository.RateRepository, exports repository.ExportRepository, log logger.Logger) *LookupService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &LookupService{
		rates:   rates,
		exports: exports,
		logger:  log,
		now:     time.Now,
	}
}

// Submit validates the form, fetches the rates and renders the result. Validation
// failures are returned as *entity.ValidationError before any request is made.
// Fetch failures are logged and rendered as a fixed message.
func (s *LookupService) Submit(ctx context.Context, form entity.FormValues) (*render.Result, error) {
	requestID := middleware.GetRequestID(ctx)

	req, err := BuildRateRequest(form)
	if err != nil {
		s.logger.Debug("Submission rejected", map[string]interface{}{
			"request_id": requestID,
			"query_type": form.QueryType,
			"reason":     err.Error(),
		})
		return nil, err
	}

	payload, err := s.rates.FindRates(ctx, req)
	if err != nil {
		s.logger.Error("Error fetching FX rates", map[string]interface{}{
			"request_id": requestID,
			"currency":   req.Currency,
			"mode":       string(req.Mode),
			"error":      err.Error(),
		})
		return render.NewMessage(render.MsgFetchFailed), nil
	}

	result := render.Render(payload, form.Currency, req)

	if result.HasDownload() && s.exports != nil {
		token, err := s.exports.Save(ctx, &entity.Export{
			Filename:  result.Filename,
			Rows:      result.DataRows(),
			CreatedAt: s.now().UTC(),
		})
		if err != nil {
			// the inline download still works without a parked export
			s.logger.Warn("Failed to park export", map[string]interface{}{
				"request_id": requestID,
				"filename":   result.Filename,
				"error":      err.Error(),
			})
		} else {
			result.ExportToken = token
		}
	}

	s.logger.Info("Lookup rendered", map[string]interface{}{
		"request_id": requestID,
		"currency":   req.Currency,
		"mode":       string(req.Mode),
		"kind":       payload.Kind.String(),
		"rows":       len(result.DataRows()),
	})

	return result, nil
}

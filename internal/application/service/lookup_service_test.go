// internal/application/service/lookup_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damon-houk/fxrate-lookup/internal/application/export"
	"github.com/damon-houk/fxrate-lookup/internal/application/render"
	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-lookup/internal/mocks"
)

func TestBuildRateRequest(t *testing.T) {
	testCases := []struct {
		name     string
		form     entity.FormValues
		expected entity.RateRequest
		alert    string
	}{
		{
			name:     "Single date",
			form:     entity.FormValues{Currency: "USD", QueryType: "single", Date: "2024-01-01"},
			expected: entity.RateRequest{Mode: entity.ModeSingle, Currency: "USD", Date: "2024-01-01"},
		},
		{
			name: "Single date ignores range fields",
			form: entity.FormValues{Currency: "USD", QueryType: "single", Date: "2024-01-01", StartDate: "2023-01-01"},
			expected: entity.RateRequest{Mode: entity.ModeSingle, Currency: "USD", Date: "2024-01-01"},
		},
		{
			name: "Date range",
			form: entity.FormValues{Currency: "JPY", QueryType: "range", StartDate: "2024-01-01", EndDate: "2024-01-31"},
			expected: entity.RateRequest{
				Mode: entity.ModeRange, Currency: "JPY", StartDate: "2024-01-01", EndDate: "2024-01-31",
			},
		},
		{
			name:  "Single date missing",
			form:  entity.FormValues{Currency: "USD", QueryType: "single"},
			alert: entity.MsgMissingDate,
		},
		{
			name:  "Range start missing",
			form:  entity.FormValues{Currency: "USD", QueryType: "range", EndDate: "2024-01-31"},
			alert: entity.MsgMissingDateRange,
		},
		{
			name:  "Range end missing",
			form:  entity.FormValues{Currency: "USD", QueryType: "range", StartDate: "2024-01-01"},
			alert: entity.MsgMissingDateRange,
		},
		{
			name:  "Unknown query type",
			form:  entity.FormValues{Currency: "USD", QueryType: "weekly", Date: "2024-01-01"},
			alert: entity.MsgUnknownQueryType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := BuildRateRequest(tc.form)

			if tc.alert != "" {
				var verr *entity.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tc.alert, verr.Message)
				assert.Equal(t, entity.RateRequest{}, req)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, req)
		})
	}
}

func newLookupService(rates *mocks.MockRateRepository, exports *mocks.MockExportRepository) *LookupService {
	log := logger.NewLogrusLogger(nil, logger.FatalLevel)
	svc := NewLookupService(rates, exports, log)
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Validation failure sends no request", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		exports := new(mocks.MockExportRepository)
		svc := newLookupService(rates, exports)

		result, err := svc.Submit(ctx, entity.FormValues{Currency: "USD", QueryType: "range", StartDate: "2024-01-01"})

		var verr *entity.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, entity.MsgMissingDateRange, verr.Message)
		assert.Nil(t, result)

		rates.AssertNotCalled(t, "FindRates", mock.Anything, mock.Anything)
		exports.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Date range renders rows and parks export", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		exports := new(mocks.MockExportRepository)
		svc := newLookupService(rates, exports)

		req := entity.RateRequest{Mode: entity.ModeRange, Currency: "USD", StartDate: "2024-01-01", EndDate: "2024-01-02"}
		rates.On("FindRates", ctx, req).Return(&entity.RatePayload{
			Kind:      entity.PayloadRange,
			StartDate: "2024-01-01",
			EndDate:   "2024-01-02",
			Rates: []entity.RatePoint{
				{Date: "2024-01-01", Rate: "1.1"},
				{Date: "2024-01-02", Rate: "1.2"},
			},
		}, nil).Once()
		exports.On("Save", ctx, mock.MatchedBy(func(e *entity.Export) bool {
			return e.Filename == "FX_Rates_USD_2024-01-01_to_2024-01-02.csv" && len(e.Rows) == 2 &&
				e.CreatedAt.Equal(time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC))
		})).Return("token-1", nil).Once()

		result, err := svc.Submit(ctx, entity.FormValues{
			Currency: "USD", QueryType: "range", StartDate: "2024-01-01", EndDate: "2024-01-02",
		})
		require.NoError(t, err)

		assert.Equal(t, render.ResultTable, result.Kind)
		assert.Equal(t, "token-1", result.ExportToken)
		csvText, err := export.Serialize(result.Rows())
		require.NoError(t, err)
		assert.Equal(t, "Date,Rate\n2024-01-01,1.1\n2024-01-02,1.2", csvText)

		rates.AssertExpectations(t)
		exports.AssertExpectations(t)
	})

	t.Run("Backend error payload is rendered without export", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		exports := new(mocks.MockExportRepository)
		svc := newLookupService(rates, exports)

		req := entity.RateRequest{Mode: entity.ModeSingle, Currency: "USD", Date: "2024-01-06"}
		rates.On("FindRates", ctx, req).Return(&entity.RatePayload{Kind: entity.PayloadError, Error: "no data"}, nil).Once()

		result, err := svc.Submit(ctx, entity.FormValues{Currency: "USD", QueryType: "single", Date: "2024-01-06"})
		require.NoError(t, err)

		assert.Equal(t, render.ResultMessage, result.Kind)
		assert.Equal(t, "no data", result.Message)
		assert.Empty(t, result.ExportToken)
		exports.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Fetch failure renders fixed message", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		exports := new(mocks.MockExportRepository)
		svc := newLookupService(rates, exports)

		rates.On("FindRates", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		result, err := svc.Submit(ctx, entity.FormValues{Currency: "USD", QueryType: "single", Date: "2024-01-01"})
		require.NoError(t, err)

		assert.Equal(t, render.ResultMessage, result.Kind)
		assert.Equal(t, render.MsgFetchFailed, result.Message)
		assert.False(t, result.HasDownload())
		exports.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Export store failure keeps the result", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		exports := new(mocks.MockExportRepository)
		svc := newLookupService(rates, exports)

		rates.On("FindRates", ctx, mock.Anything).Return(&entity.RatePayload{
			Kind: entity.PayloadSingle, Date: "2024-01-01", Rate: "1.1",
		}, nil).Once()
		exports.On("Save", ctx, mock.Anything).Return("", errors.New("disk full")).Once()

		result, err := svc.Submit(ctx, entity.FormValues{Currency: "USD", QueryType: "single", Date: "2024-01-01"})
		require.NoError(t, err)

		assert.Equal(t, render.ResultTable, result.Kind)
		assert.Empty(t, result.ExportToken)
		assert.True(t, result.HasDownload())
	})
}

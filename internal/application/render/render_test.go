package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damon-houk/fxrate-lookup/internal/application/export"
	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

func TestRenderRange(t *testing.T) {
	payload := &entity.RatePayload{
		Kind:      entity.PayloadRange,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
		Rates: []entity.RatePoint{
			{Date: "2024-01-01", Rate: "1.1"},
			{Date: "2024-01-02", Rate: "1.2"},
		},
	}
	req := entity.RateRequest{Mode: entity.ModeRange, Currency: "USD", StartDate: "2024-01-01", EndDate: "2024-01-02"}

	result := Render(payload, "USD", req)

	assert.Equal(t, ResultTable, result.Kind)
	assert.Equal(t, "FX Rates for EURUSD from 2024-01-01 to 2024-01-02:", result.Heading)
	assert.Equal(t, "FX_Rates_USD_2024-01-01_to_2024-01-02.csv", result.Filename)
	assert.True(t, result.HasDownload())

	expected := []entity.Row{
		{Date: "2024-01-01", Rate: "1.1"},
		{Date: "2024-01-02", Rate: "1.2"},
	}
	if diff := cmp.Diff(expected, result.DataRows()); diff != "" {
		t.Errorf("rows mismatch (-want, +got):\n%s", diff)
	}

	csvText, err := export.Serialize(result.Rows())
	require.NoError(t, err)
	assert.Equal(t, "Date,Rate\n2024-01-01,1.1\n2024-01-02,1.2", csvText)

	href, err := result.DownloadHref()
	require.NoError(t, err)
	assert.Equal(t, "data:text/csv;charset=utf-8,Date,Rate%0A2024-01-01,1.1%0A2024-01-02,1.2", href)
}

func TestRenderRangeFallsBackToRequestDates(t *testing.T) {
	payload := &entity.RatePayload{
		Kind:  entity.PayloadRange,
		Rates: []entity.RatePoint{{Date: "2024-01-02", Rate: "1.2"}},
	}
	req := entity.RateRequest{Mode: entity.ModeRange, Currency: "JPY", StartDate: "2024-01-01", EndDate: "2024-01-03"}

	result := Render(payload, "JPY", req)

	assert.Equal(t, "FX Rates for EURJPY from 2024-01-01 to 2024-01-03:", result.Heading)
	assert.Equal(t, "FX_Rates_JPY_2024-01-01_to_2024-01-03.csv", result.Filename)
}

func TestRenderSingle(t *testing.T) {
	payload := &entity.RatePayload{Kind: entity.PayloadSingle, Date: "2024-01-01", Rate: "1.1"}
	req := entity.RateRequest{Mode: entity.ModeSingle, Currency: "USD", Date: "2024-01-01"}

	result := Render(payload, "USD", req)

	assert.Equal(t, ResultTable, result.Kind)
	assert.Equal(t, "FX Rate for EURUSD on 2024-01-01:", result.Heading)
	assert.Equal(t, "FX_Rate_USD_2024-01-01.csv", result.Filename)
	assert.Equal(t, []entity.Row{{Date: "2024-01-01", Rate: "1.1"}}, result.DataRows())

	csvText, err := export.Serialize(result.Rows())
	require.NoError(t, err)
	assert.Equal(t, "Date,Rate\n2024-01-01,1.1", csvText)
}

func TestRenderMessages(t *testing.T) {
	req := entity.RateRequest{Mode: entity.ModeSingle, Currency: "USD", Date: "2024-01-01"}

	testCases := []struct {
		name     string
		payload  *entity.RatePayload
		expected string
	}{
		{
			name:     "backend error shown verbatim",
			payload:  &entity.RatePayload{Kind: entity.PayloadError, Error: "no data"},
			expected: "no data",
		},
		{
			name:     "unknown payload",
			payload:  &entity.RatePayload{Kind: entity.PayloadUnknown},
			expected: MsgUnexpectedResponse,
		},
		{
			name:     "nil payload",
			payload:  nil,
			expected: MsgUnexpectedResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Render(tc.payload, "USD", req)

			assert.Equal(t, ResultMessage, result.Kind)
			assert.Equal(t, tc.expected, result.Message)
			assert.False(t, result.HasDownload())
			assert.Nil(t, result.Rows())
			assert.Empty(t, result.DataRows())

			_, err := result.DownloadHref()
			assert.Error(t, err)
		})
	}
}

func TestRenderStartsFresh(t *testing.T) {
	req := entity.RateRequest{Mode: entity.ModeSingle, Currency: "USD", Date: "2024-01-01"}
	first := Render(&entity.RatePayload{Kind: entity.PayloadSingle, Date: "2024-01-01", Rate: "1.1"}, "USD", req)
	second := Render(&entity.RatePayload{Kind: entity.PayloadSingle, Date: "2024-01-02", Rate: "1.2"}, "USD", req)

	assert.Equal(t, 1, first.Rows().Len())
	assert.Equal(t, 1, second.Rows().Len())
	assert.NotSame(t, first.Rows(), second.Rows())
}

// Package render turns backend rate payloads into displayable results and the
// row list that feeds CSV export.
package render

import (
	"fmt"

	"github.com/damon-houk/fxrate-lookup/internal/application/export"
	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

// Messages shown in place of a result table
const (
	MsgFetchFailed        = "Error fetching FX rates."
	MsgUnexpectedResponse = "Unexpected response from the FX rate service."
)

// ResultKind says what the result area shows
type ResultKind int

const (
	// ResultMessage shows a single line of text and offers no download
	ResultMessage ResultKind = iota + 1
	// ResultTable shows a date/rate table and a download trigger
	ResultTable
)

// Result is the content of the result area for one submission
type Result struct {
	Kind     ResultKind
	Message  string
	Heading  string
	Currency string
	Filename string
	// ExportToken identifies the parked row list for server-side download
	ExportToken string

	rows *entity.RowList
}

// NewMessage returns a result that only shows text
func NewMessage(msg string) *Result {
	return &Result{Kind: ResultMessage, Message: msg}
}

// Render builds the result for a payload. Error payloads show the backend message,
// range and single payloads become tables, anything else shows a generic notice.
// Dates missing from the payload fall back to the request's dates.
func Render(payload *entity.RatePayload, currency string, req entity.RateRequest) *Result {
	if payload == nil {
		return NewMessage(MsgUnexpectedResponse)
	}

	switch payload.Kind {
	case entity.PayloadError:
		return NewMessage(payload.Error)
	case entity.PayloadRange:
		return renderRange(payload, currency, req)
	case entity.PayloadSingle:
		return renderSingle(payload, currency, req)
	default:
		return NewMessage(MsgUnexpectedResponse)
	}
}

func renderRange(payload *entity.RatePayload, currency string, req entity.RateRequest) *Result {
	startDate := orDefault(payload.StartDate, req.StartDate)
	endDate := orDefault(payload.EndDate, req.EndDate)

	rows := entity.NewRowList()
	for _, p := range payload.Rates {
		rows.Append(p.Date, p.Rate)
	}

	return &Result{
		Kind:     ResultTable,
		Heading:  fmt.Sprintf("FX Rates for EUR%s from %s to %s:", currency, startDate, endDate),
		Currency: currency,
		Filename: export.Filename(entity.ModeRange, currency, "", startDate, endDate),
		rows:     rows,
	}
}

func renderSingle(payload *entity.RatePayload, currency string, req entity.RateRequest) *Result {
	date := orDefault(payload.Date, req.Date)

	rows := entity.NewRowList()
	rows.Append(date, payload.Rate)

	return &Result{
		Kind:     ResultTable,
		Heading:  fmt.Sprintf("FX Rate for EUR%s on %s:", currency, date),
		Currency: currency,
		Filename: export.Filename(entity.ModeSingle, currency, date, "", ""),
		rows:     rows,
	}
}

// Rows returns the row list behind the table, or nil for message results
func (r *Result) Rows() *entity.RowList {
	return r.rows
}

// DataRows returns the table rows without the header
func (r *Result) DataRows() []entity.Row {
	if r.rows == nil {
		return nil
	}
	return r.rows.Data()
}

// HasDownload reports whether the result offers a CSV download
func (r *Result) HasDownload() bool {
	return r.Kind == ResultTable && r.rows != nil
}

// DownloadHref returns the inline data URI carrying the CSV for this result
func (r *Result) DownloadHref() (string, error) {
	if !r.HasDownload() {
		return "", fmt.Errorf("result has no rows to download")
	}

	csvText, err := export.Serialize(r.rows)
	if err != nil {
		return "", err
	}

	return export.DataURI(csvText), nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

package handler

import (
	"html/template"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

// HealthResponse is the body of the health check endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

// CurrencyOption is one entry of the currency selector
type CurrencyOption struct {
	Code     string
	Selected bool
}

// PageView is the data behind the lookup page
type PageView struct {
	Currencies []CurrencyOption
	QueryType  string
	Visibility entity.FieldVisibility
	Date       string
	StartDate  string
	EndDate    string
	Alert      string
	Result     *ResultView

	// alert texts for the in-page date check
	MissingDateMsg      string
	MissingDateRangeMsg string
}

// ResultView is the data behind the result area
type ResultView struct {
	HasTable     bool
	Message      string
	Heading      string
	Rows         []entity.Row
	Filename     string
	DownloadHref template.URL
	ExportURL    string
}

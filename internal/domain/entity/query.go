package entity

import (
	"net/url"
	"strings"
)

// QueryMode selects the shape of a rate lookup
type QueryMode string

const (
	// ModeSingle looks up the rate for one date
	ModeSingle QueryMode = "single"
	// ModeRange looks up every rate between a start and an end date
	ModeRange QueryMode = "range"
)

// ParseQueryMode converts a form value into a QueryMode
func ParseQueryMode(s string) (QueryMode, bool) {
	switch QueryMode(s) {
	case ModeSingle:
		return ModeSingle, true
	case ModeRange:
		return ModeRange, true
	default:
		return "", false
	}
}

// FormValues holds the raw lookup form fields exactly as submitted
type FormValues struct {
	Currency  string
	QueryType string
	Date      string
	StartDate string
	EndDate   string
}

// RateRequest describes one call to the backend rate endpoint
type RateRequest struct {
	Mode      QueryMode
	Currency  string
	Date      string
	StartDate string
	EndDate   string
}

// RatePath is the backend path serving exchange rates
const RatePath = "/fxrate"

// Values returns the query parameters for the request. Single-date requests carry
// currency and date; range requests carry currency, startDate and endDate.
func (r RateRequest) Values() url.Values {
	v := url.Values{}
	v.Set("currency", r.Currency)

	switch r.Mode {
	case ModeSingle:
		v.Set("date", r.Date)
	case ModeRange:
		v.Set("startDate", r.StartDate)
		v.Set("endDate", r.EndDate)
	}

	return v
}

// URL resolves the request against the backend base URL
func (r RateRequest) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + RatePath + "?" + r.Values().Encode()
}

// ValidationError is a user-facing message for a submission that was rejected
// before any request was sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Alert messages shown for rejected submissions
const (
	MsgMissingDate      = "Please select a date."
	MsgMissingDateRange = "Please select both start and end dates."
	MsgUnknownQueryType = "Please select a query type."
)

package entity

// PayloadKind classifies a backend rate response
type PayloadKind int

const (
	// PayloadUnknown is a response carrying none of error, rates or rate
	PayloadUnknown PayloadKind = iota
	// PayloadError is a backend-reported logical error
	PayloadError
	// PayloadRange is a date range response
	PayloadRange
	// PayloadSingle is a single date response
	PayloadSingle
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadError:
		return "error"
	case PayloadRange:
		return "range"
	case PayloadSingle:
		return "single"
	default:
		return "unknown"
	}
}

// RatePoint is one date and its rate, kept as the literal text the backend sent
type RatePoint struct {
	Date string
	Rate string
}

// RatePayload is a parsed response from the backend rate endpoint
type RatePayload struct {
	Kind      PayloadKind
	Error     string
	Currency  string
	Date      string
	Rate      string
	StartDate string
	EndDate   string
	// Rates is in response order
	Rates []RatePoint
}

package api

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

// ErrMalformedResponse is returned when a backend body is not the expected JSON shape
var ErrMalformedResponse = errors.New("malformed backend response")

// ParseRatePayload classifies an /fxrate response body. Fields are checked in the
// order error, rates, rate; an empty error falls through to the others. Rates keep
// the order and literal text of the body.
func ParseRatePayload(body []byte) (*entity.RatePayload, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}

	payload := &entity.RatePayload{
		Currency: doc.Get("currency").String(),
	}

	if errField := doc.Get("error"); isSet(errField) {
		payload.Kind = entity.PayloadError
		payload.Error = errField.String()
		return payload, nil
	}

	if rates := doc.Get("rates"); rates.Exists() && rates.Type != gjson.Null {
		if !rates.IsObject() {
			return nil, fmt.Errorf("%w: rates is not an object", ErrMalformedResponse)
		}

		payload.Kind = entity.PayloadRange
		payload.StartDate = firstString(doc, "startDate", "start_date")
		payload.EndDate = firstString(doc, "endDate", "end_date")
		payload.Rates = []entity.RatePoint{}

		rates.ForEach(func(key, value gjson.Result) bool {
			payload.Rates = append(payload.Rates, entity.RatePoint{
				Date: key.String(),
				Rate: literal(value),
			})
			return true
		})
		return payload, nil
	}

	if rate := doc.Get("rate"); rate.Exists() && rate.Type != gjson.Null {
		payload.Kind = entity.PayloadSingle
		payload.Date = doc.Get("date").String()
		payload.Rate = literal(rate)
		return payload, nil
	}

	payload.Kind = entity.PayloadUnknown
	return payload, nil
}

// parseCurrencies reads {"currencies": [...]} in order
func parseCurrencies(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}

	list := gjson.GetBytes(body, "currencies")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: currencies is not an array", ErrMalformedResponse)
	}

	items := list.Array()
	currencies := make([]string, 0, len(items))
	for _, item := range items {
		currencies = append(currencies, item.String())
	}

	return currencies, nil
}

// isSet reports whether an error field carries a message. Null, false and the
// empty string mean no error.
func isSet(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	default:
		return r.Exists()
	}
}

// literal returns numbers as written in the body and everything else as its string value
func literal(r gjson.Result) string {
	if r.Type == gjson.Number {
		return r.Raw
	}
	return r.String()
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := doc.Get(p); v.Exists() {
			return v.String()
		}
	}
	return ""
}

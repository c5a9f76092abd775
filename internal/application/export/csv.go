// Package export serializes row lists to CSV for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
)

const (
	// ContentType is the media type of exported files
	ContentType = "text/csv; charset=utf-8"

	// dataURIPrefix declares the CSV media type of an inline download
	dataURIPrefix = "data:text/csv;charset=utf-8,"
)

// Serialize renders the row list as CSV: the header row first, fields joined by
// commas, rows joined by newlines, without a trailing newline. Dates and rates are
// written as given, except that a field containing a comma, quote or line break,
// or starting with a space, is quoted the way encoding/csv quotes it.
func Serialize(rows *entity.RowList) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write streams the CSV form of rows to w
func Write(w io.Writer, rows *entity.RowList) error {
	var buf bytes.Buffer

	csvWriter := csv.NewWriter(&buf)
	if err := csvWriter.WriteAll(rows.Records()); err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}

	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}

// DataURI returns an inline download link for the CSV text, percent-encoded the
// way browsers encode a URI
func DataURI(csvText string) string {
	return dataURIPrefix + EncodeURI(csvText)
}

// uriReserved are the characters EncodeURI leaves as they are besides letters and digits
const uriReserved = ";,/?:@&=+$-_.!~*'()#"

// EncodeURI percent-encodes every UTF-8 byte outside the URI character set
func EncodeURI(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}

	return b.String()
}

func isURIChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	default:
		return strings.IndexByte(uriReserved, c) >= 0
	}
}

// Filename returns the download name for a rate result
func Filename(mode entity.QueryMode, currency, date, startDate, endDate string) string {
	if mode == entity.ModeRange {
		return fmt.Sprintf("FX_Rates_%s_%s_to_%s.csv", currency, startDate, endDate)
	}
	return fmt.Sprintf("FX_Rate_%s_%s.csv", currency, date)
}

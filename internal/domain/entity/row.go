package entity

import "time"

// Row is a single (date, rate) line of the export buffer
type Row struct {
	Date string `json:"date"`
	Rate string `json:"rate"`
}

// HeaderRow is the first row of every row list
var HeaderRow = Row{Date: "Date", Rate: "Rate"}

// RowList is the ordered export buffer: the header row followed by data rows
type RowList struct {
	rows []Row
}

// NewRowList creates a row list holding only the header row
func NewRowList() *RowList {
	return &RowList{rows: []Row{HeaderRow}}
}

// RowListFromData rebuilds a row list from its data rows
func RowListFromData(data []Row) *RowList {
	l := NewRowList()
	for _, r := range data {
		l.Append(r.Date, r.Rate)
	}
	return l
}

// Append adds a data row
func (l *RowList) Append(date, rate string) {
	l.rows = append(l.rows, Row{Date: date, Rate: rate})
}

// Data returns the data rows without the header
func (l *RowList) Data() []Row {
	out := make([]Row, len(l.rows)-1)
	copy(out, l.rows[1:])
	return out
}

// Len returns the number of data rows
func (l *RowList) Len() int {
	return len(l.rows) - 1
}

// Records returns every row, header first, as string pairs
func (l *RowList) Records() [][]string {
	records := make([][]string, 0, len(l.rows))
	for _, r := range l.rows {
		records = append(records, []string{r.Date, r.Rate})
	}
	return records
}

// Export is a row list parked for a single download
type Export struct {
	Token     string    `json:"token"`
	Filename  string    `json:"filename"`
	Rows      []Row     `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// RowList returns the export's rows with the header restored
func (e *Export) RowList() *RowList {
	return RowListFromData(e.Rows)
}

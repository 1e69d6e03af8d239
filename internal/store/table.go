package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table is a named table's in-memory form: a header row naming the
// fields, plus ordered data rows. All values are strings; typing is the
// caller's concern.
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Marshal renders the table as CSV with a header row.
func (t Table) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(t.Header) > 0 {
		if err := w.Write(t.Header); err != nil {
			return nil, err
		}
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Parse reads CSV bytes into a Table. The first record is the header.
// Rows may have ragged widths; they are kept as-is.
func Parse(data []byte) (Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

// Column returns the index of the named header field, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// RawTable is an uploaded spreadsheet reduced to headers and string cells.
// All values are kept as text; typing happens during enrichment.
type RawTable struct {
	// Headers are the column names after cleaning and deduplication.
	Headers []string `json:"headers"`
	// Rows are the data rows, each aligned with Headers.
	Rows [][]string `json:"rows"`
}

// Cell returns the value at (row, col), or "" when out of range.
// Source files routinely have ragged rows, so short rows are not an error.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// IsEmpty reports whether the table has no data rows.
func (t *RawTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// Fingerprint returns a content hash of the table, used as a memoization key
// and to make pipeline idempotence observable.
func (t *RawTable) Fingerprint() string {
	h := xxhash.New()
	for _, header := range t.Headers {
		h.WriteString(header)
		h.WriteString("\x1f")
	}
	h.WriteString("\x1e")
	for _, row := range t.Rows {
		for _, cell := range row {
			h.WriteString(cell)
			h.WriteString("\x1f")
		}
		h.WriteString("\x1e")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// DedupeHeaders trims header names and disambiguates duplicates by suffixing
// an incrementing counter, so keyword resolution never binds two columns to
// the same name.
func (t *RawTable) DedupeHeaders() {
	seen := make(map[string]int, len(t.Headers))
	deduped := make([]string, len(t.Headers))

	for i, header := range t.Headers {
		clean := strings.TrimSpace(strings.ReplaceAll(header, "\n", " "))
		if n, ok := seen[clean]; ok {
			seen[clean] = n + 1
			deduped[i] = fmt.Sprintf("%s_%d", clean, n+1)
		} else {
			seen[clean] = 0
			deduped[i] = clean
		}
	}

	t.Headers = deduped
}

// DropEmptyRows removes rows whose cells are all blank.
func (t *RawTable) DropEmptyRows() {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	t.Rows = kept
}

package adapters

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"shipping-analytics/internal/features/datasets/domain"
)

// CSVReader parses comma-separated files into raw tables.
type CSVReader struct{}

// NewCSVReader creates a new CSVReader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Supports reports whether the file name looks like a CSV file.
func (c *CSVReader) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

// Read parses the CSV content. A UTF-8 BOM is stripped so our own exports
// round-trip as inputs.
func (c *CSVReader) Read(r io.Reader) (*domain.RawTable, error) {
	br := bufio.NewReader(r)

	if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}

	headerRow, _ := findHeaderRow(rows)
	return tableFromRows(rows, headerRow), nil
}

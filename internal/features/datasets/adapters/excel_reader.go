package adapters

import (
	"fmt"
	"io"
	"strings"

	"shipping-analytics/internal/core/logger"
	"shipping-analytics/internal/features/datasets/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// dataKeywords are the domain words used to recognize the header row of a
// shipment sheet. A row carrying at least two of them is treated as headers.
var dataKeywords = []string{
	"awb", "reference", "shipper", "consignee", "status",
	"pickup", "delivery", "tracking", "city",
}

// headerScanLimit bounds how deep into a sheet the header search goes.
const headerScanLimit = 20

// ExcelReader parses xlsx workbooks into raw tables.
// Multi-sheet workbooks are common; the reader auto-selects the most
// data-like sheet instead of trusting the first one.
type ExcelReader struct {
	logger *zap.Logger
}

// NewExcelReader creates a new ExcelReader.
func NewExcelReader() *ExcelReader {
	return &ExcelReader{logger: logger.Get()}
}

// Supports reports whether the file name looks like an Excel workbook.
func (e *ExcelReader) Supports(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm")
}

// Read parses the workbook and returns the selected sheet as a raw table.
func (e *ExcelReader) Read(r io.Reader) (*domain.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var best *domain.RawTable
	bestScore := -1
	var bestSheet string

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		headerRow, score := findHeaderRow(rows)
		if score <= bestScore {
			continue
		}

		table := tableFromRows(rows, headerRow)
		if table.IsEmpty() {
			continue
		}

		best = table
		bestScore = score
		bestSheet = sheet
	}

	if best == nil {
		return nil, fmt.Errorf("workbook contains no data sheet")
	}

	e.logger.Debug("Selected workbook sheet",
		zap.String("sheet", bestSheet),
		zap.Int("rows", len(best.Rows)),
	)

	return best, nil
}

// findHeaderRow scans the first rows for the one carrying the most domain
// keywords. Returns the row index and its keyword count; (0, 0) means no
// keyword row was found and the first row is assumed to be the header.
func findHeaderRow(rows [][]string) (int, int) {
	limit := headerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}

	bestRow, bestCount := 0, 0
	for i := 0; i < limit; i++ {
		joined := strings.ToLower(strings.Join(rows[i], " "))
		count := 0
		for _, keyword := range dataKeywords {
			if strings.Contains(joined, keyword) {
				count++
			}
		}
		if count >= 2 && count > bestCount {
			bestRow, bestCount = i, count
		}
	}
	return bestRow, bestCount
}

// tableFromRows builds a RawTable with the given row as header.
func tableFromRows(rows [][]string, headerRow int) *domain.RawTable {
	table := &domain.RawTable{
		Headers: rows[headerRow],
	}
	if headerRow+1 < len(rows) {
		table.Rows = rows[headerRow+1:]
	}
	table.DedupeHeaders()
	table.DropEmptyRows()
	return table
}

package adapters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// TestExcelReader_Supports verifies the file extension check.
func TestExcelReader_Supports(t *testing.T) {
	reader := NewExcelReader()

	assert.True(t, reader.Supports("shipments.xlsx"))
	assert.True(t, reader.Supports("SHIPMENTS.XLSM"))
	assert.False(t, reader.Supports("shipments.csv"))
	assert.False(t, reader.Supports("shipments.xls.txt"))
}

// TestExcelReader_Read_HeaderDetection verifies the header row is found past
// leading junk rows.
func TestExcelReader_Read_HeaderDetection(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]interface{}{
		"Data": {
			{"Weekly Report"},
			{},
			{"AWB", "Status", "Pickup Date", "Delivery Date"},
			{"1001", "Delivered", "2026-01-02", "2026-01-04"},
			{"1002", "In Transit", "2026-01-03", ""},
		},
	})

	table, err := NewExcelReader().Read(buf)

	require.NoError(t, err)
	assert.Equal(t, []string{"AWB", "Status", "Pickup Date", "Delivery Date"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1001", table.Cell(0, 0))
	assert.Equal(t, "In Transit", table.Cell(1, 1))
}

// TestExcelReader_Read_PicksDataSheet verifies sheet selection prefers the
// sheet whose header carries domain keywords.
func TestExcelReader_Read_PicksDataSheet(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]interface{}{
		"Notes": {
			{"Prepared by", "Operations"},
			{"Date", "2026-01-01"},
		},
		"Shipments": {
			{"AWB", "Status", "Consignee City"},
			{"1001", "Delivered", "Riyadh"},
		},
	})

	table, err := NewExcelReader().Read(buf)

	require.NoError(t, err)
	assert.Equal(t, []string{"AWB", "Status", "Consignee City"}, table.Headers)
	require.Len(t, table.Rows, 1)
}

// TestExcelReader_Read_NotAWorkbook verifies a clear error on junk input.
func TestExcelReader_Read_NotAWorkbook(t *testing.T) {
	_, err := NewExcelReader().Read(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCSVReader_Supports verifies the file extension check.
func TestCSVReader_Supports(t *testing.T) {
	reader := NewCSVReader()

	assert.True(t, reader.Supports("shipments.csv"))
	assert.True(t, reader.Supports("SHIPMENTS.CSV"))
	assert.False(t, reader.Supports("shipments.xlsx"))
}

// TestCSVReader_Read verifies basic parsing with header detection.
func TestCSVReader_Read(t *testing.T) {
	input := strings.Join([]string{
		"Export generated 2026-01-05",
		"AWB,Status,Consignee City",
		"1001,Delivered,Riyadh",
		"1002,Returned,Jeddah",
	}, "\n")

	table, err := NewCSVReader().Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"AWB", "Status", "Consignee City"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Riyadh", table.Cell(0, 2))
}

// TestCSVReader_Read_StripsBOM verifies our own BOM-prefixed exports parse
// back cleanly.
func TestCSVReader_Read_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFAWB,Status\n1001,Delivered\n"

	table, err := NewCSVReader().Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, "AWB", table.Headers[0])
	require.Len(t, table.Rows, 1)
}

// TestCSVReader_Read_RaggedRows verifies short rows are tolerated.
func TestCSVReader_Read_RaggedRows(t *testing.T) {
	input := "AWB,Status,Consignee City\n1001,Delivered\n"

	table, err := NewCSVReader().Read(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Cell(0, 2))
}

// TestCSVReader_Read_Empty verifies an empty file is rejected.
func TestCSVReader_Read_Empty(t *testing.T) {
	_, err := NewCSVReader().Read(strings.NewReader(""))
	assert.Error(t, err)
}

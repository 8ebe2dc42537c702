package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeywords() map[Field][]string {
	return map[Field][]string{
		FieldTrackingID:    {"awb", "tracking"},
		FieldCarrierStatus: {"status"},
		FieldDeliveryDate:  {"delivery date"},
	}
}

func testOrder() []Field {
	return []Field{FieldTrackingID, FieldCarrierStatus, FieldDeliveryDate}
}

// TestResolveColumns_Keywords verifies header keyword resolution.
func TestResolveColumns_Keywords(t *testing.T) {
	table := &RawTable{
		Headers: []string{"AWB Number", "Last Status", "Delivery Date", "Notes"},
		Rows:    [][]string{{"1001", "Delivered", "2026-01-05", ""}},
	}

	mapping := ResolveColumns(table, testKeywords(), testOrder())

	assert.Equal(t, ConfidenceKeyword, mapping.Confidence)
	assert.Equal(t, 0, mapping.Columns[FieldTrackingID])
	assert.Equal(t, 1, mapping.Columns[FieldCarrierStatus])
	assert.Equal(t, 2, mapping.Columns[FieldDeliveryDate])
	assert.Equal(t, []string{"Notes"}, mapping.Unmapped)
}

// TestResolveColumns_ClaimedColumnNotReused verifies a column resolves to at
// most one field.
func TestResolveColumns_ClaimedColumnNotReused(t *testing.T) {
	// "Tracking Status" contains keywords for both fields; tracking_id is
	// resolved first and claims the column.
	table := &RawTable{
		Headers: []string{"Tracking Status", "Status"},
		Rows:    [][]string{{"1001", "Delivered"}},
	}

	mapping := ResolveColumns(table, testKeywords(), testOrder())

	assert.Equal(t, 0, mapping.Columns[FieldTrackingID])
	assert.Equal(t, 1, mapping.Columns[FieldCarrierStatus])
}

// TestResolveColumns_PositionalFallback verifies the positional mapping when
// no header matches any keyword.
func TestResolveColumns_PositionalFallback(t *testing.T) {
	table := &RawTable{
		Headers: []string{"Col A", "Col B", "Col C"},
		Rows:    [][]string{{"1001", "Delivered", "2026-01-05"}},
	}

	mapping := ResolveColumns(table, testKeywords(), testOrder())

	assert.Equal(t, ConfidencePositional, mapping.Confidence)
	assert.Equal(t, 0, mapping.Columns[FieldTrackingID])
	assert.Equal(t, 1, mapping.Columns[FieldCarrierStatus])
	assert.Equal(t, 2, mapping.Columns[FieldDeliveryDate])
}

// TestColumnMapping_Value verifies cell lookup trims and reports presence.
func TestColumnMapping_Value(t *testing.T) {
	table := &RawTable{
		Headers: []string{"AWB"},
		Rows:    [][]string{{"  1001  "}},
	}
	mapping := ResolveColumns(table, testKeywords(), testOrder())

	value, ok := mapping.Value(table, 0, FieldTrackingID)
	require.True(t, ok)
	assert.Equal(t, "1001", value)

	_, ok = mapping.Value(table, 0, FieldWeight)
	assert.False(t, ok)
}

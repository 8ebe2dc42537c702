package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-analytics/internal/features/reports/domain"
)

// TestCitiesCSV verifies the BOM prefix and the rendered rows.
func TestCitiesCSV(t *testing.T) {
	avg := 1.5
	target := 2
	payload, err := newTestReports().CitiesCSV([]domain.CityPerformanceRow{
		{
			City: "Riyadh", Total: 10, Delivered: 8, DeliveredRate: 80.0,
			Pending: 1, PendingRate: 10.0,
			FDSCount: 5, FDSRate: 62.5, WithinSLA: 7, SLARate: 70.0,
			AvgDays: &avg, SLATargetDays: &target,
		},
		{City: "Jeddah", Total: 2, Delivered: 1, DeliveredRate: 50.0},
	})

	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "City", records[0][0])
	assert.Equal(t, []string{"Riyadh", "10", "8", "80.0", "1", "10.0", "5", "62.5", "7", "70.0", "1.5", "2"}, records[1])
	// Missing optionals render as empty cells.
	assert.Equal(t, "", records[2][10])
	assert.Equal(t, "", records[2][11])
}

// TestDelaysCSV verifies rendering of the delayed shipments export.
func TestDelaysCSV(t *testing.T) {
	target := 2
	payload, err := newTestReports().DelaysCSV([]domain.DelayedShipment{
		{
			TrackingID: "1001", City: "Riyadh", Reference: "REF-1",
			CarrierStatus: "Out for Delivery", DaysSincePickup: 5,
			TargetDays: &target, DaysOver: 3, Severity: domain.SeverityModerate,
		},
	})

	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Days Since Pickup", records[0][4])
	assert.Equal(t, []string{"1001", "Riyadh", "REF-1", "Out for Delivery", "5", "2", "3", "MODERATE"}, records[1])
}

// TestDelaySummaryCSV verifies the one-row summary export.
func TestDelaySummaryCSV(t *testing.T) {
	avg := 7.3
	maxOver, minOver := 18, 1
	payload, err := newTestReports().DelaySummaryCSV(&domain.DelaySummary{
		TotalDelayed: 3,
		DelayedRate:  75.0,
		AvgDaysOver:  &avg,
		MaxDaysOver:  &maxOver,
		MinDaysOver:  &minOver,
		SeverityCounts: map[domain.DelaySeverity]int{
			domain.SeverityMinor:    1,
			domain.SeverityModerate: 1,
			domain.SeverityCritical: 1,
		},
	})

	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"3", "75.0", "7.3", "18", "1", "1", "1", "0", "1"}, records[1])
}

// TestWeeklyCSV_Empty verifies an empty report still yields a valid header.
func TestWeeklyCSV_Empty(t *testing.T) {
	payload, err := newTestReports().WeeklyCSV(nil)

	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Week", records[0][0])
}

// TestOtherStatusesCSV verifies Arabic statuses survive the round trip.
func TestOtherStatusesCSV(t *testing.T) {
	payload, err := newTestReports().OtherStatusesCSV([]domain.OtherStatusRow{
		{Status: "قيد المراجعة", Count: 4, Share: 12.5},
	})

	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"قيد المراجعة", "4", "12.5"}, records[1])
}

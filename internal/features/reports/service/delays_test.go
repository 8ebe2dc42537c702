package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enrich "shipping-analytics/internal/features/enrich/domain"
	"shipping-analytics/internal/features/reports/domain"
)

// delayTestToday keeps the backlog ages deterministic.
var delayTestToday = time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)

func newTestReportsAt(today time.Time) *ReportService {
	svc := newTestReports()
	svc.now = func() time.Time { return today }
	return svc
}

func inTransit(id, city string, pickup *time.Time, target *int) enrich.ShipmentRecord {
	return enrich.ShipmentRecord{
		TrackingID:      id,
		DestinationCity: city,
		DeliveryStatus:  enrich.StatusInTransit,
		PickupDate:      pickup,
		SLATargetDays:   target,
	}
}

// TestDelayTiers_Classify verifies the severity boundaries.
func TestDelayTiers_Classify(t *testing.T) {
	tiers := domain.DelayTiers{MinorDays: 2, ModerateDays: 5, SevereDays: 10}

	assert.Equal(t, domain.SeverityMinor, tiers.Classify(1))
	assert.Equal(t, domain.SeverityMinor, tiers.Classify(2))
	assert.Equal(t, domain.SeverityModerate, tiers.Classify(3))
	assert.Equal(t, domain.SeverityModerate, tiers.Classify(5))
	assert.Equal(t, domain.SeveritySevere, tiers.Classify(6))
	assert.Equal(t, domain.SeveritySevere, tiers.Classify(10))
	assert.Equal(t, domain.SeverityCritical, tiers.Classify(11))
}

// TestDelays_WorstFirst verifies the backlog population, ordering and the
// target fallback.
func TestDelays_WorstFirst(t *testing.T) {
	ds := &enrich.Dataset{Records: []enrich.ShipmentRecord{
		// In the network for 5 days against a 2 day target.
		inTransit("A", "Riyadh", datePtr(2026, 1, 27), intPtr(2)),
		// Exactly on target: not delayed.
		inTransit("B", "Riyadh", datePtr(2026, 1, 30), intPtr(2)),
		// No target: fallback threshold of 3, so 12 days is 9 over.
		inTransit("C", "Jeddah", datePtr(2026, 1, 20), nil),
		// No pickup or creation date: age unknown.
		inTransit("D", "Riyadh", nil, intPtr(2)),
		// Under the fallback threshold.
		inTransit("E", "Jeddah", datePtr(2026, 1, 29), nil),
		// Delivered shipments are not backlog, however old.
		{TrackingID: "F", DeliveryStatus: enrich.StatusDelivered, PickupDate: datePtr(2026, 1, 1), SLATargetDays: intPtr(2)},
	}}

	rows := newTestReportsAt(delayTestToday).Delays(ds)

	require.Len(t, rows, 2)
	assert.Equal(t, "C", rows[0].TrackingID)
	assert.Equal(t, 12, rows[0].DaysSincePickup)
	assert.Equal(t, 9, rows[0].DaysOver)
	assert.Nil(t, rows[0].TargetDays)
	assert.Equal(t, domain.SeveritySevere, rows[0].Severity)

	assert.Equal(t, "A", rows[1].TrackingID)
	assert.Equal(t, 3, rows[1].DaysOver)
	require.NotNil(t, rows[1].TargetDays)
	assert.Equal(t, 2, *rows[1].TargetDays)
	assert.Equal(t, domain.SeverityModerate, rows[1].Severity)
}

// TestDelays_ExcludedSkipped verifies excluded records never show up.
func TestDelays_ExcludedSkipped(t *testing.T) {
	r := inTransit("A", "Riyadh", datePtr(2026, 1, 20), intPtr(2))
	r.Excluded = true

	rows := newTestReportsAt(delayTestToday).Delays(&enrich.Dataset{Records: []enrich.ShipmentRecord{r}})
	assert.Empty(t, rows)
}

// TestDelays_CreationDateFallback verifies creation date ages the backlog
// when pickup is missing.
func TestDelays_CreationDateFallback(t *testing.T) {
	r := inTransit("A", "Riyadh", nil, intPtr(2))
	r.CreationDate = datePtr(2026, 1, 25)

	rows := newTestReportsAt(delayTestToday).Delays(&enrich.Dataset{Records: []enrich.ShipmentRecord{r}})

	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].DaysSincePickup)
	assert.Equal(t, 5, rows[0].DaysOver)
}

// TestDelaySummary verifies severity counts, spread and the top city list.
func TestDelaySummary(t *testing.T) {
	ds := &enrich.Dataset{Records: []enrich.ShipmentRecord{
		// 5 days old, 3 over: moderate.
		inTransit("A", "Riyadh", datePtr(2026, 1, 27), intPtr(2)),
		// 20 days old, 18 over: critical.
		inTransit("B", "Riyadh", datePtr(2026, 1, 12), intPtr(2)),
		// 3 days old, 1 over: minor.
		inTransit("C", "Jeddah", datePtr(2026, 1, 29), intPtr(2)),
		// On target: not delayed.
		inTransit("D", "Jeddah", datePtr(2026, 1, 30), intPtr(2)),
	}}

	summary := newTestReportsAt(delayTestToday).DelaySummary(ds)

	assert.Equal(t, 3, summary.TotalDelayed)
	assert.Equal(t, 75.0, summary.DelayedRate)
	assert.Equal(t, 1, summary.SeverityCounts[domain.SeverityMinor])
	assert.Equal(t, 1, summary.SeverityCounts[domain.SeverityModerate])
	assert.Equal(t, 1, summary.SeverityCounts[domain.SeverityCritical])

	require.NotNil(t, summary.AvgDaysOver)
	assert.InDelta(t, 7.3, *summary.AvgDaysOver, 0.01)
	require.NotNil(t, summary.MaxDaysOver)
	assert.Equal(t, 18, *summary.MaxDaysOver)
	require.NotNil(t, summary.MinDaysOver)
	assert.Equal(t, 1, *summary.MinDaysOver)

	require.Len(t, summary.TopCities, 2)
	assert.Equal(t, domain.DelayCityCount{City: "Riyadh", Count: 2}, summary.TopCities[0])
	assert.Equal(t, domain.DelayCityCount{City: "Jeddah", Count: 1}, summary.TopCities[1])
}

// TestDelaySummary_Empty verifies the zero-backlog shape.
func TestDelaySummary_Empty(t *testing.T) {
	summary := newTestReportsAt(delayTestToday).DelaySummary(&enrich.Dataset{})

	assert.Equal(t, 0, summary.TotalDelayed)
	assert.Nil(t, summary.AvgDaysOver)
	assert.Nil(t, summary.MaxDaysOver)
	assert.Empty(t, summary.TopCities)
}

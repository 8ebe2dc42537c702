package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	datasets "shipping-analytics/internal/features/datasets/domain"
	"shipping-analytics/internal/features/enrich/adapters"
	"shipping-analytics/internal/features/enrich/domain"
)

func newTestEnrichment(defaultSLADays int) *EnrichmentService {
	return NewEnrichmentService(defaultSLADays, zap.NewNop(),
		adapters.NewAramexProfile(),
		adapters.NewSMSAProfile(),
		adapters.NewNiceOneProfile(),
	)
}

func aramexTable(rows [][]string) *datasets.RawTable {
	return &datasets.RawTable{
		Headers: []string{
			"AWB", "Status", "Destination City", "Destination Country",
			"Pickup Date", "First Out For Delivery", "Delivery Date",
			"Total Delivery Attempts", "Weight", "COD Value", "Consignee Reference 1",
		},
		Rows: rows,
	}
}

// TestEnrichmentService_Companies verifies registration and ordering.
func TestEnrichmentService_Companies(t *testing.T) {
	svc := newTestEnrichment(0)
	assert.Equal(t, []string{"aramex", "niceone", "smsa"}, svc.Companies())
}

// TestEnrichmentService_Profile_Unknown verifies the sentinel error.
func TestEnrichmentService_Profile_Unknown(t *testing.T) {
	svc := newTestEnrichment(0)
	_, err := svc.Profile("dhl")
	assert.ErrorIs(t, err, ErrCompanyNotSupported)
}

// TestEnrich_Verdicts verifies the three-way verdict against city targets.
func TestEnrich_Verdicts(t *testing.T) {
	svc := newTestEnrichment(0)

	ds := &domain.Dataset{
		Company: "aramex",
		Raw: aramexTable([][]string{
			// Ahead: 1 day to attempt against a 2 day target.
			{"1001", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-03", "2026-01-03", "1", "1.5", "100", "REF-1"},
			// On time: exactly 2 days.
			{"1002", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-04", "2026-01-04", "1", "1.5", "100", "REF-2"},
			// Late: 3 days.
			{"1003", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-05", "2026-01-05", "2", "1.5", "100", "REF-3"},
			// No target for the city: undetermined.
			{"1004", "DELIVERED", "Abha", "SA", "2026-01-02", "2026-01-03", "2026-01-03", "1", "1.5", "100", "REF-4"},
			// Attempt date before pickup: inconsistent, undetermined.
			{"1005", "DELIVERED", "Riyadh", "SA", "2026-01-05", "2026-01-02", "2026-01-06", "1", "1.5", "100", "REF-5"},
		}),
		SLA: &datasets.SLATable{Targets: map[string]int{"riyadh": 2}},
	}

	require.NoError(t, svc.Enrich(context.Background(), ds))
	require.Len(t, ds.Records, 5)

	assert.Equal(t, domain.VerdictAhead, ds.Records[0].SLAVerdict)
	assert.Equal(t, domain.VerdictOnTime, ds.Records[1].SLAVerdict)
	assert.Equal(t, domain.VerdictLate, ds.Records[2].SLAVerdict)
	assert.Equal(t, domain.VerdictUndetermined, ds.Records[3].SLAVerdict)

	assert.Nil(t, ds.Records[4].DaysToFirstAttempt)
	assert.Equal(t, domain.VerdictUndetermined, ds.Records[4].SLAVerdict)
}

// TestEnrich_FirstAttemptSuccess verifies the same-day rule and the combined
// qualification.
func TestEnrich_FirstAttemptSuccess(t *testing.T) {
	svc := newTestEnrichment(0)

	ds := &domain.Dataset{
		Company: "aramex",
		Raw: aramexTable([][]string{
			// Delivered on the attempt day, within SLA: qualified.
			{"1001", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-03", "2026-01-03", "1", "1", "100", "REF-1"},
			// Delivered a day after the attempt: not a first-attempt success.
			{"1002", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-03", "2026-01-04", "2", "1", "100", "REF-2"},
			// Same-day delivery but late against target: success, not qualified.
			{"1003", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-07", "2026-01-07", "1", "1", "100", "REF-3"},
			// Not delivered: never a success.
			{"1004", "OUT FOR DELIVERY", "Riyadh", "SA", "2026-01-02", "2026-01-03", "", "1", "1", "100", "REF-4"},
		}),
		SLA: &datasets.SLATable{Targets: map[string]int{"riyadh": 2}},
	}

	require.NoError(t, svc.Enrich(context.Background(), ds))

	assert.True(t, ds.Records[0].FirstAttemptSuccess)
	assert.True(t, ds.Records[0].FDSQualified)

	assert.False(t, ds.Records[1].FirstAttemptSuccess)
	assert.False(t, ds.Records[1].FDSQualified)

	assert.True(t, ds.Records[2].FirstAttemptSuccess)
	assert.False(t, ds.Records[2].FDSQualified)

	assert.False(t, ds.Records[3].FirstAttemptSuccess)
}

// TestEnrich_SingleAttemptProxy verifies the attempts-based rule for feeds
// without attempt dates.
func TestEnrich_SingleAttemptProxy(t *testing.T) {
	svc := newTestEnrichment(0)

	ds := &domain.Dataset{
		Company: "niceone",
		Raw: &datasets.RawTable{
			Headers: []string{"رقم الطلب", "رقم التتبع", "موقع العميل", "المطلوب تحصيله", "حالة الطلب", "تاريخ استلام الشحنة", "تاريخ الشحن", "محاولات"},
			Rows: [][]string{
				{"ORD-1", "N-1", "Riyadh", "120", "Delivered Confirmed", "02/01/2026", "03/01/2026", "1"},
				{"ORD-2", "N-2", "Riyadh", "80", "Delivered Confirmed", "02/01/2026", "05/01/2026", "3"},
			},
		},
	}

	require.NoError(t, svc.Enrich(context.Background(), ds))

	assert.Equal(t, domain.StatusDelivered, ds.Records[0].DeliveryStatus)
	assert.True(t, ds.Records[0].FirstAttemptSuccess)
	assert.False(t, ds.Records[1].FirstAttemptSuccess)
}

// TestEnrich_Exclusions verifies excluded records keep flowing through the
// pipeline but are flagged.
func TestEnrich_Exclusions(t *testing.T) {
	svc := newTestEnrichment(0)

	ds := &domain.Dataset{
		Company: "aramex",
		Raw: aramexTable([][]string{
			{"1001", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-03", "2026-01-03", "1", "1", "100", "ORD-9_return"},
			{"1002", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-03", "2026-01-03", "1", "1", "100", "ORD-10"},
		}),
	}

	require.NoError(t, svc.Enrich(context.Background(), ds))

	assert.True(t, ds.Records[0].Excluded)
	assert.False(t, ds.Records[1].Excluded)
	assert.Len(t, ds.ActiveRecords(), 1)
}

// TestEnrich_DefaultSLATarget verifies the configured default applies to
// cities without a table entry.
func TestEnrich_DefaultSLATarget(t *testing.T) {
	svc := newTestEnrichment(2)

	ds := &domain.Dataset{
		Company: "aramex",
		Raw: aramexTable([][]string{
			{"1001", "DELIVERED", "Abha", "SA", "2026-01-02", "2026-01-03", "2026-01-03", "1", "1", "100", "REF-1"},
		}),
	}

	require.NoError(t, svc.Enrich(context.Background(), ds))

	require.NotNil(t, ds.Records[0].SLATargetDays)
	assert.Equal(t, 2, *ds.Records[0].SLATargetDays)
	assert.Equal(t, domain.VerdictAhead, ds.Records[0].SLAVerdict)
}

// TestApplySLA_RederivesVerdicts verifies a late SLA upload updates already
// built records without touching classification, and is idempotent.
func TestApplySLA_RederivesVerdicts(t *testing.T) {
	svc := newTestEnrichment(0)

	ds := &domain.Dataset{
		Company: "aramex",
		Raw: aramexTable([][]string{
			{"1001", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-04", "2026-01-04", "1", "1", "100", "REF-1"},
		}),
	}
	require.NoError(t, svc.Enrich(context.Background(), ds))
	assert.Equal(t, domain.VerdictUndetermined, ds.Records[0].SLAVerdict)

	sla := &datasets.SLATable{Targets: map[string]int{"riyadh": 2}}
	require.NoError(t, svc.ApplySLA(context.Background(), ds, sla))
	assert.Equal(t, domain.VerdictOnTime, ds.Records[0].SLAVerdict)
	assert.True(t, ds.Records[0].FDSQualified)

	// Re-applying the same table changes nothing.
	require.NoError(t, svc.ApplySLA(context.Background(), ds, sla))
	assert.Equal(t, domain.VerdictOnTime, ds.Records[0].SLAVerdict)
}

// TestEnrich_Mapping verifies mapping metadata and typed field parsing.
func TestEnrich_Mapping(t *testing.T) {
	svc := newTestEnrichment(0)

	ds := &domain.Dataset{
		Company: "aramex",
		Raw: aramexTable([][]string{
			{"1001", "DELIVERED", "Riyadh", "SA", "2026-01-02", "2026-01-03", "2026-01-03", "2", "1.25", "149.50", "REF-1"},
		}),
	}

	require.NoError(t, svc.Enrich(context.Background(), ds))

	assert.Equal(t, datasets.ConfidenceKeyword, ds.Mapping.Confidence)
	assert.NotEmpty(t, ds.Fingerprint)

	r := ds.Records[0]
	require.NotNil(t, r.TotalAttempts)
	assert.Equal(t, 2, *r.TotalAttempts)
	require.NotNil(t, r.Weight)
	assert.True(t, r.Weight.Equal(decimal.RequireFromString("1.25")))
	require.NotNil(t, r.CODAmount)
	assert.True(t, r.CODAmount.Equal(decimal.RequireFromString("149.50")))
}

// TestEnrich_NoRawData verifies the guard against empty input.
func TestEnrich_NoRawData(t *testing.T) {
	svc := newTestEnrichment(0)

	err := svc.Enrich(context.Background(), &domain.Dataset{Company: "aramex"})
	assert.ErrorIs(t, err, ErrNoRawData)
}

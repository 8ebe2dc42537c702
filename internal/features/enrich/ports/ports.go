package ports

import (
	"shipping-analytics/internal/features/datasets/domain"
	enrich "shipping-analytics/internal/features/enrich/domain"
)

// CourierProfile defines the per-courier knowledge the pipeline needs:
// which headers mean what, which status strings mean what, which records
// are excluded, and which first-attempt-success rule the feed supports.
type CourierProfile interface {
	// Company returns the courier identifier (lowercase, URL-safe).
	Company() string
	// ColumnKeywords returns, per canonical field, the header keywords that
	// resolve it.
	ColumnKeywords() map[domain.Field][]string
	// PositionalOrder returns the expected field order used by the
	// positional fallback when no header matches any keyword.
	PositionalOrder() []domain.Field
	// ClassifyStatus maps a normalized (upper-cased) carrier status onto a
	// delivery outcome.
	ClassifyStatus(statusUpper string) enrich.DeliveryStatus
	// Excluded reports whether the record is removed from rate denominators.
	Excluded(statusUpper, reference string) bool
	// FDSRule returns the first-attempt-success rule this feed supports.
	FDSRule() enrich.FDSRule
	// DayFirst reports whether ambiguous numeric dates are day-first.
	DayFirst() bool
}

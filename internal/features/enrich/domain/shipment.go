package domain

import (
	"time"

	"github.com/shopspring/decimal"

	datasets "shipping-analytics/internal/features/datasets/domain"
)

// DeliveryStatus is the canonical delivery outcome of a shipment.
// Classification is total: every non-excluded record lands in exactly one.
type DeliveryStatus string

const (
	// StatusDelivered indicates the shipment reached the consignee.
	StatusDelivered DeliveryStatus = "DELIVERED"
	// StatusInTransit indicates the shipment is still moving or pending.
	StatusInTransit DeliveryStatus = "IN_TRANSIT"
	// StatusReturned indicates the shipment went back to the shipper.
	StatusReturned DeliveryStatus = "RETURNED"
	// StatusLost indicates a lost shipment or partial return.
	StatusLost DeliveryStatus = "LOST_OR_PARTIAL_RETURN"
	// StatusOther is the bucket for carrier statuses no keyword list covers.
	// It is surfaced as a first-class report, never silently dropped.
	StatusOther DeliveryStatus = "OTHER"
)

// SLAVerdict is the three-way service-level outcome of the first attempt.
type SLAVerdict string

const (
	VerdictAhead        SLAVerdict = "AHEAD"
	VerdictOnTime       SLAVerdict = "ON_TIME"
	VerdictLate         SLAVerdict = "LATE"
	VerdictUndetermined SLAVerdict = "UNDETERMINED"
)

// WithinSLA reports whether the verdict counts as SLA compliant.
func (v SLAVerdict) WithinSLA() bool {
	return v == VerdictAhead || v == VerdictOnTime
}

// FDSRule selects how first-attempt success is derived for a courier feed.
type FDSRule string

const (
	// FDSRuleSameDay requires delivery on the same calendar day as the first
	// attempt. This is the canonical rule.
	FDSRuleSameDay FDSRule = "same_day_delivery"
	// FDSRuleSingleAttempt accepts total_attempts == 1 as a proxy, for feeds
	// that carry no attempt date column.
	FDSRuleSingleAttempt FDSRule = "single_attempt"
)

// ShipmentRecord is one tracked parcel with its derived analytics fields.
// Temporal fields hold the date component only; all comparisons downstream
// are calendar-day comparisons.
type ShipmentRecord struct {
	TrackingID         string `json:"tracking_id"`
	DestinationCity    string `json:"destination_city,omitempty"`
	DestinationCountry string `json:"destination_country,omitempty"`
	CarrierStatusRaw   string `json:"carrier_status_raw"`
	Reference          string `json:"reference,omitempty"`
	Branch             string `json:"branch,omitempty"`
	Region             string `json:"region,omitempty"`

	CreationDate     *time.Time `json:"creation_date,omitempty"`
	PickupDate       *time.Time `json:"pickup_date,omitempty"`
	FirstAttemptDate *time.Time `json:"first_attempt_date,omitempty"`
	DeliveryDate     *time.Time `json:"delivery_date,omitempty"`

	TotalAttempts *int             `json:"total_attempts,omitempty"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	CODAmount     *decimal.Decimal `json:"cod_amount,omitempty"`

	// Excluded marks records removed from every rate denominator
	// (returns-by-reference, picked-up-only) but kept for audit.
	Excluded bool `json:"excluded"`

	// Derived fields, computed by the pipeline. Never read from input.
	DeliveryStatus      DeliveryStatus `json:"delivery_status"`
	DaysToFirstAttempt  *int           `json:"days_to_first_attempt,omitempty"`
	SLATargetDays       *int           `json:"sla_target_days,omitempty"`
	SLAVerdict          SLAVerdict     `json:"sla_verdict"`
	FirstAttemptSuccess bool           `json:"first_attempt_success"`
	FDSQualified        bool           `json:"fds_qualified"`
}

// ReferenceDate is the anchor date for day counting and week bucketing:
// pickup date, falling back to creation date.
func (r *ShipmentRecord) ReferenceDate() *time.Time {
	if r.PickupDate != nil {
		return r.PickupDate
	}
	return r.CreationDate
}

// Dataset is the enriched table held for a browsing session, plus the
// diagnostics a careful operator needs to judge the mapping quality.
type Dataset struct {
	// Company is the courier this dataset belongs to.
	Company string `json:"company"`
	// Records are the enriched shipments.
	Records []ShipmentRecord `json:"records"`
	// Mapping documents how raw columns resolved to canonical fields.
	Mapping datasets.ColumnMapping `json:"mapping"`
	// Fingerprint is the content hash of the raw input table.
	Fingerprint string `json:"fingerprint"`

	// Raw is the input table; cleared after enrichment before storage.
	Raw *datasets.RawTable `json:"-"`
	// SLA is the city target table in force during enrichment.
	SLA *datasets.SLATable `json:"-"`
}

// TotalRows is the unfiltered row count, exclusions included. The
// other-status report intentionally uses this denominator.
func (d *Dataset) TotalRows() int {
	return len(d.Records)
}

// ActiveRecords returns the records that count toward rate denominators.
func (d *Dataset) ActiveRecords() []ShipmentRecord {
	active := make([]ShipmentRecord, 0, len(d.Records))
	for _, r := range d.Records {
		if !r.Excluded {
			active = append(active, r)
		}
	}
	return active
}

// SameCalendarDay reports whether two dates fall on the same calendar day.
func SameCalendarDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns whole calendar days from a to b (b - a).
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

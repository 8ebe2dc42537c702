package domain

import (
	"github.com/shopspring/decimal"

	enrich "shipping-analytics/internal/features/enrich/domain"
)

// Summary is the headline KPI block for one company's dataset.
// Every rate is a percentage rounded to one decimal.
type Summary struct {
	Company           string `json:"company"`
	TotalRows         int    `json:"total_rows"`
	ActiveShipments   int    `json:"active_shipments"`
	ExcludedShipments int    `json:"excluded_shipments"`

	StatusCounts map[enrich.DeliveryStatus]int `json:"status_counts"`

	DeliveredRate float64 `json:"delivered_rate"`
	ReturnedRate  float64 `json:"returned_rate"`

	// FDSCount and FDSRate measure first-attempt, within-SLA deliveries.
	// The rate denominator is active shipments, like every other rate here.
	FDSCount int     `json:"fds_count"`
	FDSRate  float64 `json:"fds_rate"`

	// SLACompliantCount counts Ahead and OnTime verdicts; the rate is over
	// active shipments, with SLADeterminedCount alongside for context.
	SLACompliantCount  int     `json:"sla_compliant_count"`
	SLADeterminedCount int     `json:"sla_determined_count"`
	SLAComplianceRate  float64 `json:"sla_compliance_rate"`

	AvgDaysToFirstAttempt *float64 `json:"avg_days_to_first_attempt,omitempty"`

	TotalCOD    decimal.Decimal `json:"total_cod"`
	TotalWeight decimal.Decimal `json:"total_weight"`

	CityCount       int `json:"city_count"`
	SLAMatchedCount int `json:"sla_matched_count"`

	MappingConfidence string `json:"mapping_confidence"`
}

// CityPerformanceRow is one destination city's aggregate, volume-ranked.
// Pending counts shipments still moving through the network.
type CityPerformanceRow struct {
	City          string   `json:"city"`
	Total         int      `json:"total"`
	Delivered     int      `json:"delivered"`
	DeliveredRate float64  `json:"delivered_rate"`
	Pending       int      `json:"pending"`
	PendingRate   float64  `json:"pending_rate"`
	FDSCount      int      `json:"fds_count"`
	FDSRate       float64  `json:"fds_rate"`
	WithinSLA     int      `json:"within_sla"`
	SLARate       float64  `json:"sla_rate"`
	AvgDays       *float64 `json:"avg_days,omitempty"`
	SLATargetDays *int     `json:"sla_target_days,omitempty"`
}

// WeeklyPerformanceRow is one ISO week's aggregate, in chronological order.
// The week of a shipment is taken from its reference date.
type WeeklyPerformanceRow struct {
	Year          int     `json:"year"`
	Week          int     `json:"week"`
	Label         string  `json:"label"`
	Total         int     `json:"total"`
	Delivered     int     `json:"delivered"`
	DeliveredRate float64 `json:"delivered_rate"`
	Pending       int     `json:"pending"`
	PendingRate   float64 `json:"pending_rate"`
	FDSCount      int     `json:"fds_count"`
	FDSRate       float64 `json:"fds_rate"`
	WithinSLA     int     `json:"within_sla"`
	SLARate       float64 `json:"sla_rate"`
}

// BranchPerformanceRow is one dispatch branch's aggregate, volume-ranked.
type BranchPerformanceRow struct {
	Branch        string  `json:"branch"`
	Total         int     `json:"total"`
	Delivered     int     `json:"delivered"`
	DeliveredRate float64 `json:"delivered_rate"`
	Pending       int     `json:"pending"`
	PendingRate   float64 `json:"pending_rate"`
	FDSCount      int     `json:"fds_count"`
	FDSRate       float64 `json:"fds_rate"`
	WithinSLA     int     `json:"within_sla"`
	SLARate       float64 `json:"sla_rate"`
}

// DelaySeverity tiers a late shipment by how far past target it ran.
type DelaySeverity string

const (
	SeverityMinor    DelaySeverity = "MINOR"
	SeverityModerate DelaySeverity = "MODERATE"
	SeveritySevere   DelaySeverity = "SEVERE"
	SeverityCritical DelaySeverity = "CRITICAL"
)

// DelayTiers holds the upper day bound of each severity tier. A delay past
// Severe days over target is Critical.
type DelayTiers struct {
	MinorDays    int
	ModerateDays int
	SevereDays   int
}

// Classify tiers a days-over-target delta.
func (t DelayTiers) Classify(daysOver int) DelaySeverity {
	switch {
	case daysOver <= t.MinorDays:
		return SeverityMinor
	case daysOver <= t.ModerateDays:
		return SeverityModerate
	case daysOver <= t.SevereDays:
		return SeveritySevere
	default:
		return SeverityCritical
	}
}

// DelayedShipment is one undelivered shipment that has been in the network
// longer than its city's target, or longer than the fallback threshold when
// its city has no target.
type DelayedShipment struct {
	TrackingID      string        `json:"tracking_id"`
	City            string        `json:"city,omitempty"`
	Reference       string        `json:"reference,omitempty"`
	CarrierStatus   string        `json:"carrier_status"`
	DaysSincePickup int           `json:"days_since_pickup"`
	TargetDays      *int          `json:"target_days,omitempty"`
	DaysOver        int           `json:"days_over"`
	Severity        DelaySeverity `json:"severity"`
}

// DelayCityCount is one city's share of the delayed backlog.
type DelayCityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// DelaySummary aggregates the delayed backlog by severity.
type DelaySummary struct {
	TotalDelayed   int                   `json:"total_delayed"`
	DelayedRate    float64               `json:"delayed_rate"`
	SeverityCounts map[DelaySeverity]int `json:"severity_counts"`
	AvgDaysOver    *float64              `json:"avg_days_over,omitempty"`
	MaxDaysOver    *int                  `json:"max_days_over,omitempty"`
	MinDaysOver    *int                  `json:"min_days_over,omitempty"`
	TopCities      []DelayCityCount      `json:"top_cities,omitempty"`
}

// OtherStatusRow is one unclassified carrier status with its frequency.
// The share denominator is the unfiltered row count, exclusions included,
// so the report shows how much of the raw feed escapes classification.
type OtherStatusRow struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"`
}

// UnmatchedSLARow is one destination city that no SLA target covers.
type UnmatchedSLARow struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// AttemptsRow is one delivery-attempt count with its frequency among
// delivered shipments that carry attempt data.
type AttemptsRow struct {
	Attempts int     `json:"attempts"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`
}

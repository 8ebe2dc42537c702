package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	datasets "shipping-analytics/internal/features/datasets/domain"
	enrich "shipping-analytics/internal/features/enrich/domain"
	"shipping-analytics/internal/features/reports/domain"
)

// ReportService aggregates enriched datasets into the dashboard reports.
// Every method derives its answer from the dataset alone; only the delay
// backlog reads the clock.
type ReportService struct {
	tiers        domain.DelayTiers
	fallbackDays int
	logger       *zap.Logger
	now          func() time.Time
}

// NewReportService creates the service. fallbackDays is the delay threshold
// for cities without an SLA target.
func NewReportService(tiers domain.DelayTiers, fallbackDays int, logger *zap.Logger) *ReportService {
	return &ReportService{tiers: tiers, fallbackDays: fallbackDays, logger: logger, now: time.Now}
}

// round1 rounds a percentage to one decimal, the display precision
// everywhere in the dashboard.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// rate returns n/d as a percentage rounded to one decimal; 0 when d is 0.
func rate(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return round1(float64(n) / float64(d) * 100)
}

// Summary computes the headline KPI block. Every rate shares the active
// shipment denominator so sub-counts reconstruct from the percentages.
func (s *ReportService) Summary(ds *enrich.Dataset) domain.Summary {
	active := ds.ActiveRecords()

	summary := domain.Summary{
		Company:           ds.Company,
		TotalRows:         ds.TotalRows(),
		ActiveShipments:   len(active),
		ExcludedShipments: ds.TotalRows() - len(active),
		StatusCounts:      make(map[enrich.DeliveryStatus]int),
		TotalCOD:          decimal.Zero,
		TotalWeight:       decimal.Zero,
		MappingConfidence: string(ds.Mapping.Confidence),
	}

	cities := make(map[string]bool)
	daysSum, daysCount := 0, 0

	for i := range active {
		r := &active[i]
		summary.StatusCounts[r.DeliveryStatus]++

		if r.FDSQualified {
			summary.FDSCount++
		}
		if r.SLAVerdict != enrich.VerdictUndetermined {
			summary.SLADeterminedCount++
			if r.SLAVerdict.WithinSLA() {
				summary.SLACompliantCount++
			}
		}
		if r.DaysToFirstAttempt != nil {
			daysSum += *r.DaysToFirstAttempt
			daysCount++
		}
		if r.CODAmount != nil {
			summary.TotalCOD = summary.TotalCOD.Add(*r.CODAmount)
		}
		if r.Weight != nil {
			summary.TotalWeight = summary.TotalWeight.Add(*r.Weight)
		}
		if r.DestinationCity != "" {
			cities[datasets.NormalizeCityKey(r.DestinationCity)] = true
		}
		if r.SLATargetDays != nil {
			summary.SLAMatchedCount++
		}
	}

	summary.CityCount = len(cities)
	summary.DeliveredRate = rate(summary.StatusCounts[enrich.StatusDelivered], len(active))
	summary.ReturnedRate = rate(summary.StatusCounts[enrich.StatusReturned], len(active))
	summary.FDSRate = rate(summary.FDSCount, len(active))
	summary.SLAComplianceRate = rate(summary.SLACompliantCount, len(active))
	if daysCount > 0 {
		avg := round1(float64(daysSum) / float64(daysCount))
		summary.AvgDaysToFirstAttempt = &avg
	}
	return summary
}

// Cities aggregates active shipments per destination city, largest first.
// Cities are merged on the normalized key; the first spelling seen is the
// display name.
func (s *ReportService) Cities(ds *enrich.Dataset) []domain.CityPerformanceRow {
	type cityAcc struct {
		row       domain.CityPerformanceRow
		daysSum   int
		daysCount int
	}
	groups := make(map[string]*cityAcc)
	order := make([]string, 0)

	for _, r := range ds.ActiveRecords() {
		if r.DestinationCity == "" {
			continue
		}
		key := datasets.NormalizeCityKey(r.DestinationCity)
		acc, ok := groups[key]
		if !ok {
			acc = &cityAcc{row: domain.CityPerformanceRow{City: strings.TrimSpace(r.DestinationCity)}}
			groups[key] = acc
			order = append(order, key)
		}
		acc.row.Total++
		if r.DeliveryStatus == enrich.StatusDelivered {
			acc.row.Delivered++
		}
		if r.DeliveryStatus == enrich.StatusInTransit {
			acc.row.Pending++
		}
		if r.FDSQualified {
			acc.row.FDSCount++
		}
		if r.SLAVerdict.WithinSLA() {
			acc.row.WithinSLA++
		}
		if r.DaysToFirstAttempt != nil {
			acc.daysSum += *r.DaysToFirstAttempt
			acc.daysCount++
		}
		if r.SLATargetDays != nil && acc.row.SLATargetDays == nil {
			target := *r.SLATargetDays
			acc.row.SLATargetDays = &target
		}
	}

	rows := make([]domain.CityPerformanceRow, 0, len(groups))
	for _, key := range order {
		acc := groups[key]
		acc.row.DeliveredRate = rate(acc.row.Delivered, acc.row.Total)
		acc.row.PendingRate = rate(acc.row.Pending, acc.row.Total)
		acc.row.FDSRate = rate(acc.row.FDSCount, acc.row.Total)
		acc.row.SLARate = rate(acc.row.WithinSLA, acc.row.Total)
		if acc.daysCount > 0 {
			avg := round1(float64(acc.daysSum) / float64(acc.daysCount))
			acc.row.AvgDays = &avg
		}
		rows = append(rows, acc.row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].City < rows[j].City
	})
	return rows
}

// Weekly aggregates active shipments per ISO week of their reference date,
// oldest first. Records without a reference date are skipped.
func (s *ReportService) Weekly(ds *enrich.Dataset) []domain.WeeklyPerformanceRow {
	type weekKey struct{ year, week int }
	groups := make(map[weekKey]*domain.WeeklyPerformanceRow)

	for _, r := range ds.ActiveRecords() {
		ref := r.ReferenceDate()
		if ref == nil {
			continue
		}
		year, week := ref.ISOWeek()
		key := weekKey{year, week}
		row, ok := groups[key]
		if !ok {
			row = &domain.WeeklyPerformanceRow{
				Year:  year,
				Week:  week,
				Label: fmt.Sprintf("%d-W%02d", year, week),
			}
			groups[key] = row
		}
		row.Total++
		if r.DeliveryStatus == enrich.StatusDelivered {
			row.Delivered++
		}
		if r.DeliveryStatus == enrich.StatusInTransit {
			row.Pending++
		}
		if r.FDSQualified {
			row.FDSCount++
		}
		if r.SLAVerdict.WithinSLA() {
			row.WithinSLA++
		}
	}

	rows := make([]domain.WeeklyPerformanceRow, 0, len(groups))
	for _, row := range groups {
		row.DeliveredRate = rate(row.Delivered, row.Total)
		row.PendingRate = rate(row.Pending, row.Total)
		row.FDSRate = rate(row.FDSCount, row.Total)
		row.SLARate = rate(row.WithinSLA, row.Total)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Week < rows[j].Week
	})
	return rows
}

// Branches aggregates active shipments per dispatch branch, largest first.
// Records with no branch assignment fall into the default warehouse bucket.
func (s *ReportService) Branches(ds *enrich.Dataset) []domain.BranchPerformanceRow {
	groups := make(map[string]*domain.BranchPerformanceRow)

	for _, r := range ds.ActiveRecords() {
		branch := r.Branch
		if branch == "" {
			branch = "WH"
		}
		row, ok := groups[branch]
		if !ok {
			row = &domain.BranchPerformanceRow{Branch: branch}
			groups[branch] = row
		}
		row.Total++
		if r.DeliveryStatus == enrich.StatusDelivered {
			row.Delivered++
		}
		if r.DeliveryStatus == enrich.StatusInTransit {
			row.Pending++
		}
		if r.FDSQualified {
			row.FDSCount++
		}
		if r.SLAVerdict.WithinSLA() {
			row.WithinSLA++
		}
	}

	rows := make([]domain.BranchPerformanceRow, 0, len(groups))
	for _, row := range groups {
		row.DeliveredRate = rate(row.Delivered, row.Total)
		row.PendingRate = rate(row.Pending, row.Total)
		row.FDSRate = rate(row.FDSCount, row.Total)
		row.SLARate = rate(row.WithinSLA, row.Total)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Branch < rows[j].Branch
	})
	return rows
}

// OtherStatuses lists the carrier statuses that escaped classification,
// most frequent first. The share denominator is the unfiltered row count.
func (s *ReportService) OtherStatuses(ds *enrich.Dataset) []domain.OtherStatusRow {
	counts := make(map[string]int)
	for _, r := range ds.ActiveRecords() {
		if r.DeliveryStatus != enrich.StatusOther {
			continue
		}
		counts[enrich.NormalizeStatus(r.CarrierStatusRaw)]++
	}

	rows := make([]domain.OtherStatusRow, 0, len(counts))
	for status, count := range counts {
		rows = append(rows, domain.OtherStatusRow{
			Status: status,
			Count:  count,
			Share:  rate(count, ds.TotalRows()),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Status < rows[j].Status
	})
	return rows
}

// UnmatchedSLA lists destination cities that no SLA target covers, largest
// first. Returns nil when no SLA table is loaded.
func (s *ReportService) UnmatchedSLA(ds *enrich.Dataset) []domain.UnmatchedSLARow {
	if ds.SLA == nil {
		return nil
	}

	type cityAcc struct {
		display string
		count   int
	}
	groups := make(map[string]*cityAcc)

	for _, r := range ds.ActiveRecords() {
		if r.DestinationCity == "" {
			continue
		}
		if _, ok := ds.SLA.TargetFor(r.DestinationCity); ok {
			continue
		}
		key := datasets.NormalizeCityKey(r.DestinationCity)
		acc, ok := groups[key]
		if !ok {
			acc = &cityAcc{display: strings.TrimSpace(r.DestinationCity)}
			groups[key] = acc
		}
		acc.count++
	}

	rows := make([]domain.UnmatchedSLARow, 0, len(groups))
	for _, acc := range groups {
		rows = append(rows, domain.UnmatchedSLARow{City: acc.display, Count: acc.count})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].City < rows[j].City
	})
	return rows
}

// Attempts breaks delivered shipments down by delivery attempt count.
// Shares are over delivered shipments that carry attempt data.
func (s *ReportService) Attempts(ds *enrich.Dataset) []domain.AttemptsRow {
	counts := make(map[int]int)
	total := 0
	for _, r := range ds.ActiveRecords() {
		if r.DeliveryStatus != enrich.StatusDelivered || r.TotalAttempts == nil {
			continue
		}
		counts[*r.TotalAttempts]++
		total++
	}

	rows := make([]domain.AttemptsRow, 0, len(counts))
	for attempts, count := range counts {
		rows = append(rows, domain.AttemptsRow{
			Attempts: attempts,
			Count:    count,
			Share:    rate(count, total),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Attempts < rows[j].Attempts
	})
	return rows
}

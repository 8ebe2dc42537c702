package service

import (
	"sort"

	datasets "shipping-analytics/internal/features/datasets/domain"
	enrich "shipping-analytics/internal/features/enrich/domain"
	"shipping-analytics/internal/features/reports/domain"
)

// topDelayedCities bounds the city breakdown in the delay summary.
const topDelayedCities = 5

// Delays lists the undelivered backlog: shipments still in the network
// longer than their city target allows, worst first. A city without an SLA
// target falls back to the configured threshold; fallback rows carry no
// target so readers can tell the two apart.
func (s *ReportService) Delays(ds *enrich.Dataset) []domain.DelayedShipment {
	today := s.now()
	delayed := make([]domain.DelayedShipment, 0)

	for _, r := range ds.ActiveRecords() {
		if r.DeliveryStatus == enrich.StatusDelivered {
			continue
		}
		ref := r.ReferenceDate()
		if ref == nil {
			continue
		}
		elapsed := enrich.DaysBetween(*ref, today)
		if elapsed < 0 {
			continue
		}

		target := s.fallbackDays
		var reported *int
		if r.SLATargetDays != nil {
			target = *r.SLATargetDays
			t := target
			reported = &t
		}

		over := elapsed - target
		if over <= 0 {
			continue
		}

		delayed = append(delayed, domain.DelayedShipment{
			TrackingID:      r.TrackingID,
			City:            r.DestinationCity,
			Reference:       r.Reference,
			CarrierStatus:   r.CarrierStatusRaw,
			DaysSincePickup: elapsed,
			TargetDays:      reported,
			DaysOver:        over,
			Severity:        s.tiers.Classify(over),
		})
	}

	sort.Slice(delayed, func(i, j int) bool {
		if delayed[i].DaysOver != delayed[j].DaysOver {
			return delayed[i].DaysOver > delayed[j].DaysOver
		}
		return delayed[i].TrackingID < delayed[j].TrackingID
	})
	return delayed
}

// DelaySummary aggregates the delayed backlog by severity and city. The rate
// denominator is the active shipment count.
func (s *ReportService) DelaySummary(ds *enrich.Dataset) domain.DelaySummary {
	delayed := s.Delays(ds)

	summary := domain.DelaySummary{
		TotalDelayed:   len(delayed),
		DelayedRate:    rate(len(delayed), len(ds.ActiveRecords())),
		SeverityCounts: make(map[domain.DelaySeverity]int),
	}
	if len(delayed) == 0 {
		return summary
	}

	overSum := 0
	maxOver, minOver := delayed[0].DaysOver, delayed[0].DaysOver
	type cityAcc struct {
		display string
		count   int
	}
	cities := make(map[string]*cityAcc)

	for _, d := range delayed {
		summary.SeverityCounts[d.Severity]++
		overSum += d.DaysOver
		if d.DaysOver > maxOver {
			maxOver = d.DaysOver
		}
		if d.DaysOver < minOver {
			minOver = d.DaysOver
		}
		if d.City != "" {
			key := datasets.NormalizeCityKey(d.City)
			acc, ok := cities[key]
			if !ok {
				acc = &cityAcc{display: d.City}
				cities[key] = acc
			}
			acc.count++
		}
	}

	avg := round1(float64(overSum) / float64(len(delayed)))
	summary.AvgDaysOver = &avg
	summary.MaxDaysOver = &maxOver
	summary.MinDaysOver = &minOver

	top := make([]domain.DelayCityCount, 0, len(cities))
	for _, acc := range cities {
		top = append(top, domain.DelayCityCount{City: acc.display, Count: acc.count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].City < top[j].City
	})
	if len(top) > topDelayedCities {
		top = top[:topDelayedCities]
	}
	summary.TopCities = top

	return summary
}

package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cast"

	"shipping-analytics/internal/features/reports/domain"
)

// utf8BOM prefixes every export so Excel opens Arabic city names correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return cast.ToString(*v)
}

// CitiesCSV renders the city performance report as a CSV export.
func (s *ReportService) CitiesCSV(rows []domain.CityPerformanceRow) ([]byte, error) {
	headers := []string{
		"City", "Total", "Delivered", "Delivered %", "Pending", "Pending %",
		"FDS", "FDS %", "Within SLA", "SLA %", "Avg Days", "SLA Target Days",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.City,
			cast.ToString(r.Total),
			cast.ToString(r.Delivered),
			formatRate(r.DeliveredRate),
			cast.ToString(r.Pending),
			formatRate(r.PendingRate),
			cast.ToString(r.FDSCount),
			formatRate(r.FDSRate),
			cast.ToString(r.WithinSLA),
			formatRate(r.SLARate),
			formatOptFloat(r.AvgDays),
			formatOptInt(r.SLATargetDays),
		})
	}
	return writeCSV(headers, records)
}

// WeeklyCSV renders the weekly performance report as a CSV export.
func (s *ReportService) WeeklyCSV(rows []domain.WeeklyPerformanceRow) ([]byte, error) {
	headers := []string{
		"Week", "Total", "Delivered", "Delivered %", "Pending", "Pending %",
		"FDS", "FDS %", "Within SLA", "SLA %",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Label,
			cast.ToString(r.Total),
			cast.ToString(r.Delivered),
			formatRate(r.DeliveredRate),
			cast.ToString(r.Pending),
			formatRate(r.PendingRate),
			cast.ToString(r.FDSCount),
			formatRate(r.FDSRate),
			cast.ToString(r.WithinSLA),
			formatRate(r.SLARate),
		})
	}
	return writeCSV(headers, records)
}

// BranchesCSV renders the branch performance report as a CSV export.
func (s *ReportService) BranchesCSV(rows []domain.BranchPerformanceRow) ([]byte, error) {
	headers := []string{
		"Branch", "Total", "Delivered", "Delivered %", "Pending", "Pending %",
		"FDS", "FDS %", "Within SLA", "SLA %",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Branch,
			cast.ToString(r.Total),
			cast.ToString(r.Delivered),
			formatRate(r.DeliveredRate),
			cast.ToString(r.Pending),
			formatRate(r.PendingRate),
			cast.ToString(r.FDSCount),
			formatRate(r.FDSRate),
			cast.ToString(r.WithinSLA),
			formatRate(r.SLARate),
		})
	}
	return writeCSV(headers, records)
}

// DelaysCSV renders the delayed shipments report as a CSV export.
func (s *ReportService) DelaysCSV(rows []domain.DelayedShipment) ([]byte, error) {
	headers := []string{
		"Tracking ID", "City", "Reference", "Carrier Status",
		"Days Since Pickup", "Target Days", "Days Over", "Severity",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.TrackingID,
			r.City,
			r.Reference,
			r.CarrierStatus,
			cast.ToString(r.DaysSincePickup),
			formatOptInt(r.TargetDays),
			cast.ToString(r.DaysOver),
			string(r.Severity),
		})
	}
	return writeCSV(headers, records)
}

// DelaySummaryCSV renders the delay backlog summary as a one-row CSV export.
func (s *ReportService) DelaySummaryCSV(summary *domain.DelaySummary) ([]byte, error) {
	headers := []string{
		"Total Delayed", "Delayed %", "Avg Days Over", "Max Days Over",
		"Min Days Over", "Minor", "Moderate", "Severe", "Critical",
	}
	row := []string{
		cast.ToString(summary.TotalDelayed),
		formatRate(summary.DelayedRate),
		formatOptFloat(summary.AvgDaysOver),
		formatOptInt(summary.MaxDaysOver),
		formatOptInt(summary.MinDaysOver),
		cast.ToString(summary.SeverityCounts[domain.SeverityMinor]),
		cast.ToString(summary.SeverityCounts[domain.SeverityModerate]),
		cast.ToString(summary.SeverityCounts[domain.SeveritySevere]),
		cast.ToString(summary.SeverityCounts[domain.SeverityCritical]),
	}
	return writeCSV(headers, [][]string{row})
}

// OtherStatusesCSV renders the unclassified status report as a CSV export.
func (s *ReportService) OtherStatusesCSV(rows []domain.OtherStatusRow) ([]byte, error) {
	headers := []string{"Status", "Count", "Share %"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Status,
			cast.ToString(r.Count),
			formatRate(r.Share),
		})
	}
	return writeCSV(headers, records)
}

// UnmatchedSLACSV renders the uncovered-cities report as a CSV export.
func (s *ReportService) UnmatchedSLACSV(rows []domain.UnmatchedSLARow) ([]byte, error) {
	headers := []string{"City", "Count"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.City, cast.ToString(r.Count)})
	}
	return writeCSV(headers, records)
}

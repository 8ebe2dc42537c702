package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	datasets "shipping-analytics/internal/features/datasets/domain"
	datasetsvc "shipping-analytics/internal/features/datasets/service"
	enrich "shipping-analytics/internal/features/enrich/domain"
	enrichsvc "shipping-analytics/internal/features/enrich/service"
	reportdom "shipping-analytics/internal/features/reports/domain"
	reportsvc "shipping-analytics/internal/features/reports/service"
	sessiondom "shipping-analytics/internal/features/sessions/domain"
	sessionports "shipping-analytics/internal/features/sessions/ports"
	sessionsvc "shipping-analytics/internal/features/sessions/service"
)

// ErrNoData indicates no shipment file has been uploaded for the company.
var ErrNoData = errors.New("no shipment data uploaded")

// sampleRows is the size of the generated demo dataset.
const sampleRows = 300

// UploadResult summarizes a processed shipment upload.
type UploadResult struct {
	Company           string   `json:"company"`
	Filename          string   `json:"filename"`
	RowCount          int      `json:"row_count"`
	ExcludedCount     int      `json:"excluded_count"`
	MappingConfidence string   `json:"mapping_confidence"`
	UnmappedColumns   []string `json:"unmapped_columns,omitempty"`
	Fingerprint       string   `json:"fingerprint"`
	SLAApplied        bool     `json:"sla_applied"`
}

// SLAUploadResult summarizes a processed SLA target upload.
type SLAUploadResult struct {
	Company          string `json:"company"`
	Cities           int    `json:"cities"`
	AppliedToRecords bool   `json:"applied_to_records"`
}

// BranchUploadResult summarizes a processed batch of branch sub-files.
type BranchUploadResult struct {
	Company     string   `json:"company"`
	FilesLoaded int      `json:"files_loaded"`
	Assignments int      `json:"assignments"`
	Matched     int      `json:"matched"`
	Errors      []string `json:"errors,omitempty"`
}

// AnalyticsService orchestrates the dashboard: uploads flow through ingest
// and enrichment into the session store, and reports are derived on demand
// from whatever the session holds.
type AnalyticsService struct {
	ingest  *datasetsvc.IngestService
	enrich  *enrichsvc.EnrichmentService
	reports *reportsvc.ReportService
	repo    sessionports.DatasetRepository
	memo    *sessionsvc.Memoizer
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService wires the orchestration service.
func NewAnalyticsService(
	ingest *datasetsvc.IngestService,
	enrichment *enrichsvc.EnrichmentService,
	reports *reportsvc.ReportService,
	repo sessionports.DatasetRepository,
	memo *sessionsvc.Memoizer,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		ingest:  ingest,
		enrich:  enrichment,
		reports: reports,
		repo:    repo,
		memo:    memo,
		logger:  logger,
		now:     time.Now,
	}
}

// Companies lists every supported courier with its per-session data state.
func (s *AnalyticsService) Companies(ctx context.Context, sessionID string) ([]sessiondom.CompanyStatus, error) {
	statuses := make([]sessiondom.CompanyStatus, 0)
	for _, company := range s.enrich.Companies() {
		status := sessiondom.CompanyStatus{Company: company}

		data, err := s.repo.Load(ctx, sessionID, company)
		if err != nil && !errors.Is(err, sessionports.ErrNotFound) {
			return nil, err
		}
		if data != nil {
			status.HasShipments = data.Dataset != nil
			status.HasSLA = len(data.SLATargets) > 0
			if data.Dataset != nil {
				status.RecordCount = data.Dataset.TotalRows()
			}
			status.Shipments = data.ShipmentUpload
			status.SLA = data.SLAUpload
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// UploadShipments processes a shipment file upload. A structural failure
// rejects the upload and leaves previously stored data untouched.
func (s *AnalyticsService) UploadShipments(ctx context.Context, sessionID, company, filename string, r io.Reader) (*UploadResult, error) {
	if _, err := s.enrich.Profile(company); err != nil {
		return nil, err
	}

	table, err := s.ingest.ReadTable(filename, r)
	if err != nil {
		return nil, err
	}

	data, err := s.loadOrCreate(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}

	ds := &enrich.Dataset{Company: company, Raw: table}
	if len(data.SLATargets) > 0 {
		ds.SLA = &datasets.SLATable{Targets: data.SLATargets}
	}
	if err := s.enrich.Enrich(ctx, ds); err != nil {
		return nil, err
	}
	applyBranches(ds, data.Branches)

	// The raw table is only needed during enrichment; storing it would
	// multiply the session payload for no reader.
	ds.Raw = nil

	data.Dataset = ds
	data.ShipmentUpload = &sessiondom.UploadMeta{
		Filename:    filename,
		UploadedAt:  s.now(),
		RowCount:    ds.TotalRows(),
		Fingerprint: ds.Fingerprint,
	}
	if err := s.repo.Save(ctx, sessionID, company, data); err != nil {
		return nil, err
	}

	return &UploadResult{
		Company:           company,
		Filename:          filename,
		RowCount:          ds.TotalRows(),
		ExcludedCount:     ds.TotalRows() - len(ds.ActiveRecords()),
		MappingConfidence: string(ds.Mapping.Confidence),
		UnmappedColumns:   ds.Mapping.Unmapped,
		Fingerprint:       ds.Fingerprint,
		SLAApplied:        ds.SLA != nil,
	}, nil
}

// UploadSLA processes a city target file. When shipment data is already
// loaded, verdicts are re-derived against the new targets immediately.
func (s *AnalyticsService) UploadSLA(ctx context.Context, sessionID, company, filename string, r io.Reader) (*SLAUploadResult, error) {
	if _, err := s.enrich.Profile(company); err != nil {
		return nil, err
	}

	sla, err := s.ingest.ReadSLATable(filename, r)
	if err != nil {
		return nil, err
	}

	data, err := s.loadOrCreate(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}

	applied := false
	if data.Dataset != nil {
		if err := s.enrich.ApplySLA(ctx, data.Dataset, sla); err != nil {
			return nil, err
		}
		applied = true
	}

	data.SLATargets = sla.Targets
	data.SLAUpload = &sessiondom.UploadMeta{
		Filename:    filename,
		UploadedAt:  s.now(),
		RowCount:    sla.Len(),
		Fingerprint: sla.Fingerprint(),
	}
	if err := s.repo.Save(ctx, sessionID, company, data); err != nil {
		return nil, err
	}

	return &SLAUploadResult{
		Company:          company,
		Cities:           sla.Len(),
		AppliedToRecords: applied,
	}, nil
}

// UploadBranches processes branch sub-files and joins the assignments onto
// the stored shipments by tracking reference. Per-file failures are reported
// but do not fail the batch.
func (s *AnalyticsService) UploadBranches(ctx context.Context, sessionID, company string, files []datasetsvc.NamedFile) (*BranchUploadResult, error) {
	if _, err := s.enrich.Profile(company); err != nil {
		return nil, err
	}

	join := s.ingest.ReadBranchFiles(files)
	if join.FilesLoaded == 0 {
		return nil, fmt.Errorf("no branch file could be loaded: %v", join.Errors)
	}

	data, err := s.loadOrCreate(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}

	if data.Branches == nil {
		data.Branches = make(map[string]string)
	}
	for ref, assignment := range join.Assignments {
		data.Branches[ref] = assignment.Branch
	}

	matched := 0
	if data.Dataset != nil {
		matched = applyBranches(data.Dataset, data.Branches)
	}
	if err := s.repo.Save(ctx, sessionID, company, data); err != nil {
		return nil, err
	}

	return &BranchUploadResult{
		Company:     company,
		FilesLoaded: join.FilesLoaded,
		Assignments: len(join.Assignments),
		Matched:     matched,
		Errors:      join.Errors,
	}, nil
}

// LoadSample loads the generated demo dataset for a company so the dashboard
// can be explored without a real export file.
func (s *AnalyticsService) LoadSample(ctx context.Context, sessionID, company string) (*UploadResult, error) {
	if _, err := s.enrich.Profile(company); err != nil {
		return nil, err
	}

	today := s.now()
	table := datasetsvc.SampleTable(sampleRows, today)

	data, err := s.loadOrCreate(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}

	ds := &enrich.Dataset{Company: company, Raw: table}
	if len(data.SLATargets) > 0 {
		ds.SLA = &datasets.SLATable{Targets: data.SLATargets}
	}
	if err := s.enrich.Enrich(ctx, ds); err != nil {
		return nil, err
	}

	if data.Branches == nil {
		data.Branches = make(map[string]string)
	}
	for ref, assignment := range datasetsvc.SampleBranchAssignments(table, today) {
		data.Branches[ref] = assignment.Branch
	}
	applyBranches(ds, data.Branches)
	ds.Raw = nil

	data.Dataset = ds
	data.ShipmentUpload = &sessiondom.UploadMeta{
		Filename:    "sample",
		UploadedAt:  today,
		RowCount:    ds.TotalRows(),
		Fingerprint: ds.Fingerprint,
	}
	if err := s.repo.Save(ctx, sessionID, company, data); err != nil {
		return nil, err
	}

	return &UploadResult{
		Company:           company,
		Filename:          "sample",
		RowCount:          ds.TotalRows(),
		ExcludedCount:     ds.TotalRows() - len(ds.ActiveRecords()),
		MappingConfidence: string(ds.Mapping.Confidence),
		Fingerprint:       ds.Fingerprint,
		SLAApplied:        ds.SLA != nil,
	}, nil
}

// Clear drops everything the session holds for a company.
func (s *AnalyticsService) Clear(ctx context.Context, sessionID, company string) error {
	if _, err := s.enrich.Profile(company); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sessionID, company); err != nil {
		return err
	}
	s.logger.Info("company data cleared",
		zap.String("session", sessionID),
		zap.String("company", company),
	)
	return nil
}

func (s *AnalyticsService) loadOrCreate(ctx context.Context, sessionID, company string) (*sessiondom.CompanyData, error) {
	data, err := s.repo.Load(ctx, sessionID, company)
	if errors.Is(err, sessionports.ErrNotFound) {
		return &sessiondom.CompanyData{}, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// loadDataset returns the enriched dataset for a session and company, with
// the stored SLA targets reattached.
func (s *AnalyticsService) loadDataset(ctx context.Context, sessionID, company string) (*enrich.Dataset, error) {
	if _, err := s.enrich.Profile(company); err != nil {
		return nil, err
	}
	data, err := s.repo.Load(ctx, sessionID, company)
	if errors.Is(err, sessionports.ErrNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	if data.Dataset == nil {
		return nil, ErrNoData
	}
	if len(data.SLATargets) > 0 {
		data.Dataset.SLA = &datasets.SLATable{Targets: data.SLATargets}
	}
	return data.Dataset, nil
}

func (s *AnalyticsService) memoKey(report, sessionID string, ds *enrich.Dataset) uint64 {
	return sessionsvc.MemoKey(report, sessionID, ds.Company, ds.Fingerprint, ds.SLA.Fingerprint())
}

// dayKey stamps a report name with the current calendar day. The delay
// reports age the backlog against the clock, so their memo entries must not
// survive midnight.
func (s *AnalyticsService) dayKey(report string) string {
	return report + "@" + s.now().Format("2006-01-02")
}

// Summary computes the headline KPI block for a company.
func (s *AnalyticsService) Summary(ctx context.Context, sessionID, company string) (*reportdom.Summary, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey("summary", sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.(*reportdom.Summary); ok {
			return cached, nil
		}
	}
	summary := s.reports.Summary(ds)
	s.memo.Set(key, &summary)
	return &summary, nil
}

// Cities computes the city performance report.
func (s *AnalyticsService) Cities(ctx context.Context, sessionID, company string) ([]reportdom.CityPerformanceRow, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey("cities", sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.([]reportdom.CityPerformanceRow); ok {
			return cached, nil
		}
	}
	rows := s.reports.Cities(ds)
	s.memo.Set(key, rows)
	return rows, nil
}

// Weekly computes the weekly performance report.
func (s *AnalyticsService) Weekly(ctx context.Context, sessionID, company string) ([]reportdom.WeeklyPerformanceRow, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey("weekly", sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.([]reportdom.WeeklyPerformanceRow); ok {
			return cached, nil
		}
	}
	rows := s.reports.Weekly(ds)
	s.memo.Set(key, rows)
	return rows, nil
}

// Branches computes the branch performance report.
func (s *AnalyticsService) Branches(ctx context.Context, sessionID, company string) ([]reportdom.BranchPerformanceRow, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey("branches", sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.([]reportdom.BranchPerformanceRow); ok {
			return cached, nil
		}
	}
	rows := s.reports.Branches(ds)
	s.memo.Set(key, rows)
	return rows, nil
}

// Delays computes the delayed shipments report.
func (s *AnalyticsService) Delays(ctx context.Context, sessionID, company string) ([]reportdom.DelayedShipment, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey(s.dayKey("delays"), sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.([]reportdom.DelayedShipment); ok {
			return cached, nil
		}
	}
	rows := s.reports.Delays(ds)
	s.memo.Set(key, rows)
	return rows, nil
}

// DelaySummary computes the delay severity aggregate.
func (s *AnalyticsService) DelaySummary(ctx context.Context, sessionID, company string) (*reportdom.DelaySummary, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey(s.dayKey("delay_summary"), sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.(*reportdom.DelaySummary); ok {
			return cached, nil
		}
	}
	summary := s.reports.DelaySummary(ds)
	s.memo.Set(key, &summary)
	return &summary, nil
}

// OtherStatuses computes the unclassified status report.
func (s *AnalyticsService) OtherStatuses(ctx context.Context, sessionID, company string) ([]reportdom.OtherStatusRow, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey("other_statuses", sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.([]reportdom.OtherStatusRow); ok {
			return cached, nil
		}
	}
	rows := s.reports.OtherStatuses(ds)
	s.memo.Set(key, rows)
	return rows, nil
}

// UnmatchedSLA computes the uncovered-cities report.
func (s *AnalyticsService) UnmatchedSLA(ctx context.Context, sessionID, company string) ([]reportdom.UnmatchedSLARow, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey("unmatched_sla", sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.([]reportdom.UnmatchedSLARow); ok {
			return cached, nil
		}
	}
	rows := s.reports.UnmatchedSLA(ds)
	s.memo.Set(key, rows)
	return rows, nil
}

// Attempts computes the delivery attempts breakdown.
func (s *AnalyticsService) Attempts(ctx context.Context, sessionID, company string) ([]reportdom.AttemptsRow, error) {
	ds, err := s.loadDataset(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	key := s.memoKey("attempts", sessionID, ds)
	if v, ok := s.memo.Get(key); ok {
		if cached, ok := v.([]reportdom.AttemptsRow); ok {
			return cached, nil
		}
	}
	rows := s.reports.Attempts(ds)
	s.memo.Set(key, rows)
	return rows, nil
}

// ExportCities renders the city report as CSV.
func (s *AnalyticsService) ExportCities(ctx context.Context, sessionID, company string) ([]byte, error) {
	rows, err := s.Cities(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	return s.reports.CitiesCSV(rows)
}

// ExportWeekly renders the weekly report as CSV.
func (s *AnalyticsService) ExportWeekly(ctx context.Context, sessionID, company string) ([]byte, error) {
	rows, err := s.Weekly(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	return s.reports.WeeklyCSV(rows)
}

// ExportBranches renders the branch report as CSV.
func (s *AnalyticsService) ExportBranches(ctx context.Context, sessionID, company string) ([]byte, error) {
	rows, err := s.Branches(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	return s.reports.BranchesCSV(rows)
}

// ExportDelays renders the delayed shipments report as CSV.
func (s *AnalyticsService) ExportDelays(ctx context.Context, sessionID, company string) ([]byte, error) {
	rows, err := s.Delays(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	return s.reports.DelaysCSV(rows)
}

// ExportDelaySummary renders the delay backlog summary as CSV.
func (s *AnalyticsService) ExportDelaySummary(ctx context.Context, sessionID, company string) ([]byte, error) {
	summary, err := s.DelaySummary(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	return s.reports.DelaySummaryCSV(summary)
}

// ExportOtherStatuses renders the unclassified status report as CSV.
func (s *AnalyticsService) ExportOtherStatuses(ctx context.Context, sessionID, company string) ([]byte, error) {
	rows, err := s.OtherStatuses(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	return s.reports.OtherStatusesCSV(rows)
}

// ExportUnmatchedSLA renders the uncovered-cities report as CSV.
func (s *AnalyticsService) ExportUnmatchedSLA(ctx context.Context, sessionID, company string) ([]byte, error) {
	rows, err := s.UnmatchedSLA(ctx, sessionID, company)
	if err != nil {
		return nil, err
	}
	return s.reports.UnmatchedSLACSV(rows)
}

// applyBranches joins branch assignments onto records by reference, falling
// back to the tracking id. Returns the number of matched records.
func applyBranches(ds *enrich.Dataset, branches map[string]string) int {
	if len(branches) == 0 {
		return 0
	}
	matched := 0
	for i := range ds.Records {
		r := &ds.Records[i]
		if branch, ok := branches[r.Reference]; ok && branch != "" {
			r.Branch = branch
			matched++
			continue
		}
		if branch, ok := branches[r.TrackingID]; ok && branch != "" {
			r.Branch = branch
			matched++
		}
	}
	return matched
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/zoobzio/pipz"
	"go.uber.org/zap"

	datasets "shipping-analytics/internal/features/datasets/domain"
	"shipping-analytics/internal/features/enrich/domain"
	"shipping-analytics/internal/features/enrich/ports"
)

var (
	// ErrCompanyNotSupported indicates no courier profile matches the company.
	ErrCompanyNotSupported = errors.New("company not supported")
	// ErrNoRawData indicates enrichment was asked to run without an input table.
	ErrNoRawData = errors.New("no raw data to enrich")
)

// maxAttemptWindowDays bounds days-to-first-attempt. Deltas beyond a year
// are stale backlog rows, not service measurements.
const maxAttemptWindowDays = 365

const (
	stageBuildRecords pipz.Name = "build_records"
	stageClassify     pipz.Name = "classify_status"
	stageSLA          pipz.Name = "sla_verdict"
	stageFDS          pipz.Name = "first_attempt_success"
)

// EnrichmentService turns raw courier tables into enriched shipment datasets.
// All derivation runs through a per-company pipeline so each stage stays
// testable and re-runnable on its own.
type EnrichmentService struct {
	profiles       map[string]ports.CourierProfile
	defaultSLADays int
	logger         *zap.Logger
	now            func() time.Time
}

// NewEnrichmentService creates the service with the given courier profiles.
// defaultSLADays <= 0 disables the default target for unmapped cities.
func NewEnrichmentService(defaultSLADays int, logger *zap.Logger, profiles ...ports.CourierProfile) *EnrichmentService {
	byCompany := make(map[string]ports.CourierProfile, len(profiles))
	for _, p := range profiles {
		byCompany[p.Company()] = p
	}
	return &EnrichmentService{
		profiles:       byCompany,
		defaultSLADays: defaultSLADays,
		logger:         logger,
		now:            time.Now,
	}
}

// Companies returns the supported courier identifiers, sorted.
func (s *EnrichmentService) Companies() []string {
	companies := make([]string, 0, len(s.profiles))
	for company := range s.profiles {
		companies = append(companies, company)
	}
	sort.Strings(companies)
	return companies
}

// Profile returns the courier profile for a company.
func (s *EnrichmentService) Profile(company string) (ports.CourierProfile, error) {
	profile, ok := s.profiles[strings.ToLower(strings.TrimSpace(company))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotSupported, company)
	}
	return profile, nil
}

// Enrich resolves the column mapping for the dataset's raw table and runs
// the full pipeline: record building, status classification, SLA verdicts
// and first-attempt success. The dataset is mutated in place.
func (s *EnrichmentService) Enrich(ctx context.Context, ds *domain.Dataset) error {
	profile, err := s.Profile(ds.Company)
	if err != nil {
		return err
	}
	if ds.Raw == nil || ds.Raw.IsEmpty() {
		return ErrNoRawData
	}

	ds.Mapping = datasets.ResolveColumns(ds.Raw, profile.ColumnKeywords(), profile.PositionalOrder())
	ds.Fingerprint = ds.Raw.Fingerprint()

	seq := pipz.NewSequence[*domain.Dataset]("enrich_"+profile.Company(),
		s.buildRecordsStage(profile),
		s.classifyStage(profile),
		s.slaStage(),
		s.fdsStage(profile),
	)
	if _, err := seq.Process(ctx, ds); err != nil {
		return fmt.Errorf("enrichment pipeline: %w", err)
	}

	s.logger.Info("dataset enriched",
		zap.String("company", ds.Company),
		zap.Int("records", len(ds.Records)),
		zap.String("mapping_confidence", string(ds.Mapping.Confidence)),
		zap.String("fingerprint", ds.Fingerprint),
	)
	return nil
}

// ApplySLA re-derives SLA verdicts and first-attempt success against a new
// target table without touching the already built records. Used when a city
// target file arrives after the shipment file.
func (s *EnrichmentService) ApplySLA(ctx context.Context, ds *domain.Dataset, sla *datasets.SLATable) error {
	profile, err := s.Profile(ds.Company)
	if err != nil {
		return err
	}
	ds.SLA = sla

	seq := pipz.NewSequence[*domain.Dataset]("apply_sla_"+profile.Company(),
		s.slaStage(),
		s.fdsStage(profile),
	)
	if _, err := seq.Process(ctx, ds); err != nil {
		return fmt.Errorf("sla pipeline: %w", err)
	}

	s.logger.Info("sla targets applied",
		zap.String("company", ds.Company),
		zap.Int("cities", sla.Len()),
	)
	return nil
}

// buildRecordsStage maps raw rows onto shipment records. Date columns are
// parsed column-wise so the serial-number fallback can see the whole column.
func (s *EnrichmentService) buildRecordsStage(profile ports.CourierProfile) pipz.Processor[*domain.Dataset] {
	return pipz.Apply(stageBuildRecords, func(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, error) {
		t := ds.Raw
		mapping := ds.Mapping
		now := s.now()

		records := make([]domain.ShipmentRecord, len(t.Rows))
		for row := range t.Rows {
			r := &records[row]
			r.TrackingID, _ = mapping.Value(t, row, datasets.FieldTrackingID)
			r.DestinationCity, _ = mapping.Value(t, row, datasets.FieldDestinationCity)
			r.DestinationCountry, _ = mapping.Value(t, row, datasets.FieldDestinationCountry)
			r.CarrierStatusRaw, _ = mapping.Value(t, row, datasets.FieldCarrierStatus)
			r.Reference, _ = mapping.Value(t, row, datasets.FieldReference)
			r.Region, _ = mapping.Value(t, row, datasets.FieldRegion)

			if raw, ok := mapping.Value(t, row, datasets.FieldTotalAttempts); ok && raw != "" {
				if v, err := cast.ToFloat64E(raw); err == nil && v >= 0 {
					attempts := int(v)
					r.TotalAttempts = &attempts
				}
			}
			if raw, ok := mapping.Value(t, row, datasets.FieldWeight); ok && raw != "" {
				if v, err := decimal.NewFromString(raw); err == nil {
					r.Weight = &v
				}
			}
			if raw, ok := mapping.Value(t, row, datasets.FieldCODAmount); ok && raw != "" {
				if v, err := decimal.NewFromString(raw); err == nil {
					r.CODAmount = &v
				}
			}

			statusUpper := domain.NormalizeStatus(r.CarrierStatusRaw)
			r.Excluded = profile.Excluded(statusUpper, r.Reference)
		}

		dateFields := []struct {
			field  datasets.Field
			assign func(r *domain.ShipmentRecord, t *time.Time)
		}{
			{datasets.FieldCreationDate, func(r *domain.ShipmentRecord, t *time.Time) { r.CreationDate = t }},
			{datasets.FieldPickupDate, func(r *domain.ShipmentRecord, t *time.Time) { r.PickupDate = t }},
			{datasets.FieldFirstAttemptDate, func(r *domain.ShipmentRecord, t *time.Time) { r.FirstAttemptDate = t }},
			{datasets.FieldDeliveryDate, func(r *domain.ShipmentRecord, t *time.Time) { r.DeliveryDate = t }},
		}
		for _, df := range dateFields {
			if !mapping.Has(df.field) {
				continue
			}
			values := make([]string, len(t.Rows))
			for row := range t.Rows {
				values[row], _ = mapping.Value(t, row, df.field)
			}
			parsed := ParseDateColumn(values, profile.DayFirst(), now)
			for row, d := range parsed {
				df.assign(&records[row], d)
			}
		}

		ds.Records = records
		return ds, nil
	})
}

func (s *EnrichmentService) classifyStage(profile ports.CourierProfile) pipz.Processor[*domain.Dataset] {
	return pipz.Apply(stageClassify, func(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, error) {
		for i := range ds.Records {
			r := &ds.Records[i]
			r.DeliveryStatus = profile.ClassifyStatus(domain.NormalizeStatus(r.CarrierStatusRaw))
		}
		return ds, nil
	})
}

// slaStage derives days-to-first-attempt, the per-city target and the
// verdict. A negative delta means the dates are inconsistent and the delta
// is nulled rather than reported as an early attempt.
func (s *EnrichmentService) slaStage() pipz.Processor[*domain.Dataset] {
	return pipz.Apply(stageSLA, func(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, error) {
		for i := range ds.Records {
			r := &ds.Records[i]

			r.DaysToFirstAttempt = nil
			if ref := r.ReferenceDate(); ref != nil && r.FirstAttemptDate != nil {
				days := domain.DaysBetween(*ref, *r.FirstAttemptDate)
				if days >= 0 && days <= maxAttemptWindowDays {
					r.DaysToFirstAttempt = &days
				}
			}

			r.SLATargetDays = nil
			if target, ok := ds.SLA.TargetFor(r.DestinationCity); ok {
				r.SLATargetDays = &target
			} else if s.defaultSLADays > 0 && r.DestinationCity != "" {
				target := s.defaultSLADays
				r.SLATargetDays = &target
			}

			switch {
			case r.DaysToFirstAttempt == nil || r.SLATargetDays == nil:
				r.SLAVerdict = domain.VerdictUndetermined
			case *r.DaysToFirstAttempt < *r.SLATargetDays:
				r.SLAVerdict = domain.VerdictAhead
			case *r.DaysToFirstAttempt == *r.SLATargetDays:
				r.SLAVerdict = domain.VerdictOnTime
			default:
				r.SLAVerdict = domain.VerdictLate
			}
		}
		return ds, nil
	})
}

// fdsStage derives first-attempt success per the profile's rule and the
// combined qualification (delivered on the first attempt, within SLA).
func (s *EnrichmentService) fdsStage(profile ports.CourierProfile) pipz.Processor[*domain.Dataset] {
	return pipz.Apply(stageFDS, func(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, error) {
		for i := range ds.Records {
			r := &ds.Records[i]

			r.FirstAttemptSuccess = false
			if r.DeliveryStatus == domain.StatusDelivered {
				switch profile.FDSRule() {
				case domain.FDSRuleSingleAttempt:
					r.FirstAttemptSuccess = r.TotalAttempts != nil && *r.TotalAttempts == 1
				default:
					r.FirstAttemptSuccess = domain.SameCalendarDay(r.DeliveryDate, r.FirstAttemptDate)
				}
			}

			r.FDSQualified = r.FirstAttemptSuccess && r.SLAVerdict.WithinSLA()
		}
		return ds, nil
	})
}

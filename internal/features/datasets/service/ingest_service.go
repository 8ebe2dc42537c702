package service

import (
	"errors"
	"fmt"
	"io"

	"shipping-analytics/internal/core/logger"
	"shipping-analytics/internal/features/datasets/domain"
	"shipping-analytics/internal/features/datasets/ports"

	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFile is returned when no reader handles the file type.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrEmptySLATable is returned when an SLA upload has no valid rows
	// after cleaning.
	ErrEmptySLATable = errors.New("sla file has no valid city rows")
)

// IngestService turns uploaded files into raw tables.
type IngestService struct {
	readers []ports.TableReader
	logger  *zap.Logger
}

// NewIngestService creates a new IngestService with the given readers.
func NewIngestService(readers []ports.TableReader) *IngestService {
	return &IngestService{
		readers: readers,
		logger:  logger.Get(),
	}
}

// ReadTable parses an uploaded file into a raw table.
// Failures here are structural: the upload is rejected and nothing changes.
func (s *IngestService) ReadTable(filename string, r io.Reader) (*domain.RawTable, error) {
	for _, reader := range s.readers {
		if !reader.Supports(filename) {
			continue
		}
		table, err := reader.Read(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		if table.IsEmpty() {
			return nil, fmt.Errorf("file %s contains no data rows", filename)
		}
		s.logger.Info("Parsed uploaded table",
			zap.String("file", filename),
			zap.Int("rows", len(table.Rows)),
			zap.Int("columns", len(table.Headers)),
		)
		return table, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
}

// ReadSLATable parses an uploaded SLA reference file into a city target table.
func (s *IngestService) ReadSLATable(filename string, r io.Reader) (*domain.SLATable, error) {
	table, err := s.ReadTable(filename, r)
	if err != nil {
		return nil, err
	}

	sla := domain.BuildSLATable(table)
	if sla == nil {
		return nil, ErrEmptySLATable
	}

	s.logger.Info("Parsed SLA table",
		zap.String("file", filename),
		zap.Int("cities", sla.Len()),
	)
	return sla, nil
}

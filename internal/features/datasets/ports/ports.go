package ports

import (
	"io"

	"shipping-analytics/internal/features/datasets/domain"
)

// TableReader defines the interface for file-format specific table parsers.
type TableReader interface {
	// Read parses file content into a raw table with cleaned headers.
	Read(r io.Reader) (*domain.RawTable, error)
	// Supports reports whether this reader handles the given file name.
	Supports(filename string) bool
}

package ports

import (
	"context"
	"errors"

	"shipping-analytics/internal/features/sessions/domain"
)

// ErrNotFound indicates the session holds no data for the company.
var ErrNotFound = errors.New("company data not found")

// DatasetRepository stores per-session, per-company analytics data.
// Sessions are isolated: one browser's uploads never leak into another's.
type DatasetRepository interface {
	// Save stores the company data for a session.
	Save(ctx context.Context, sessionID, company string, data *domain.CompanyData) error

	// Load retrieves the company data for a session. Returns ErrNotFound
	// when the session has no data for the company.
	Load(ctx context.Context, sessionID, company string) (*domain.CompanyData, error)

	// Delete removes the company data for a session.
	Delete(ctx context.Context, sessionID, company string) error
}

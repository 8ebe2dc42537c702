package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipping-analytics/internal/core/cache"
	"shipping-analytics/internal/features/sessions/domain"
	"shipping-analytics/internal/features/sessions/ports"
)

// CacheRepository persists session data as JSON blobs behind the cache port.
// Redis in production, the in-process adapter otherwise; either way the TTL
// bounds how long an abandoned session lingers.
type CacheRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheRepository creates the repository. ttl of 0 disables expiry.
func NewCacheRepository(c cache.Cache, ttl time.Duration) *CacheRepository {
	return &CacheRepository{cache: c, ttl: ttl}
}

func sessionKey(sessionID, company string) string {
	return fmt.Sprintf("session:%s:company:%s", sessionID, company)
}

// Save stores the company data for a session.
func (r *CacheRepository) Save(ctx context.Context, sessionID, company string, data *domain.CompanyData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal company data: %w", err)
	}
	if err := r.cache.Set(ctx, sessionKey(sessionID, company), payload, r.ttl); err != nil {
		return fmt.Errorf("store company data: %w", err)
	}
	return nil
}

// Load retrieves the company data for a session.
func (r *CacheRepository) Load(ctx context.Context, sessionID, company string) (*domain.CompanyData, error) {
	payload, err := r.cache.Get(ctx, sessionKey(sessionID, company))
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("load company data: %w", err)
	}

	var data domain.CompanyData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal company data: %w", err)
	}
	return &data, nil
}

// Delete removes the company data for a session.
func (r *CacheRepository) Delete(ctx context.Context, sessionID, company string) error {
	if err := r.cache.Delete(ctx, sessionKey(sessionID, company)); err != nil {
		return fmt.Errorf("delete company data: %w", err)
	}
	return nil
}

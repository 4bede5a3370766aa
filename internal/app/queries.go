package app

import (
	"context"
	"errors"
	"time"

	"staydeal/internal/domain"
)

type SettingsService struct {
	repo     domain.SettingsRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSettingsService(r domain.SettingsRepository, c domain.Cache, ttl time.Duration) *SettingsService {
	return &SettingsService{repo: r, cache: c, cacheTTL: ttl}
}

func settingsKey(tenantID string) string { return "negsettings:" + tenantID }

// GetSettings returns the tenant's totally defined negotiation settings.
// A tenant without a stored document gets DefaultSettings; that is a
// legitimate state, not an error. Store failures propagate unchanged.
func (s *SettingsService) GetSettings(ctx context.Context, tenantID string) (domain.NegotiationSettings, error) {
	key := settingsKey(tenantID)
	var ns domain.NegotiationSettings
	if ok, _ := s.cache.Get(ctx, key, &ns); ok {
		return ns, nil
	}

	doc, err := s.repo.GetSettingsDoc(ctx, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Defaults are not cached: a tenant configuring itself for the
			// first time should see its document on the very next read.
			return domain.DefaultSettings(), nil
		}
		return domain.NegotiationSettings{}, err
	}

	ns = NormalizeSettings(doc)
	_ = s.cache.Set(ctx, key, ns, int(s.cacheTTL.Seconds()))
	return ns, nil
}

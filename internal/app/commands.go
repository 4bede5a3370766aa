package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staydeal/internal/domain"
)

// UpdateSettings is the only write surface of the engine: it validates,
// persists and evicts the tenant's cache entry so the next read sees the new
// document.
func (s *SettingsService) UpdateSettings(ctx context.Context, tenantID string, ns domain.NegotiationSettings) error {
	if err := ValidateSettings(ns); err != nil {
		return err
	}
	if err := s.repo.UpsertSettings(ctx, tenantID, ns); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, settingsKey(tenantID))
	return nil
}

// ValidateSettings rejects documents the evaluator could not honor.
// Percentages are decimal 0-100; money fields are non-negative.
func ValidateSettings(ns domain.NegotiationSettings) error {
	pcts := map[string]float64{
		"pixDiscountPercentage":     ns.PixDiscountPercentage,
		"cashDiscountPercentage":    ns.CashDiscountPercentage,
		"bookNowDiscountPercentage": ns.BookNowDiscountPercentage,
		"maxDiscountPercentage":     ns.MaxDiscountPercentage,
	}
	for name, v := range pcts {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidSettings, name)
		}
	}
	for i, r := range ns.ExtendedStayRules {
		if r.MinDays < 0 || r.DiscountPercentage < 0 || r.DiscountPercentage > 100 {
			return fmt.Errorf("%w: extendedStayRules[%d]", ErrInvalidSettings, i)
		}
	}
	for i, r := range ns.EarlyBookingRules {
		if r.DaysInAdvance < 0 || r.DiscountPercentage < 0 || r.DiscountPercentage > 100 {
			return fmt.Errorf("%w: earlyBookingRules[%d]", ErrInvalidSettings, i)
		}
	}
	for i, r := range ns.LastMinuteRules {
		if r.DaysBeforeCheckIn < 0 || r.DiscountPercentage < 0 || r.DiscountPercentage > 100 {
			return fmt.Errorf("%w: lastMinuteRules[%d]", ErrInvalidSettings, i)
		}
	}
	if ns.MinPriceAfterDiscount < 0 || ns.MinInstallmentValue < 0 || ns.MaxInstallments < 0 || ns.BookNowTimeLimit < 0 {
		return fmt.Errorf("%w: negative numeric field", ErrInvalidSettings)
	}
	return nil
}

// ErrInvalidSettings marks a settings document rejected before persistence.
var ErrInvalidSettings = errors.New("invalid negotiation settings")

// SyncService pulls tenant settings from the platform control plane into the
// local store. The engine itself never writes through this path at request
// time; it runs from cmd/syncer.
type SyncService struct {
	platform domain.PlatformClient
	repo     domain.SettingsRepository
	cache    domain.Cache
}

func NewSyncService(p domain.PlatformClient, r domain.SettingsRepository, cache domain.Cache) *SyncService {
	return &SyncService{platform: p, repo: r, cache: cache}
}

// SyncTenant fetches one tenant's settings and upserts them locally.
// 404 means the tenant never configured negotiation: recorded as a miss and
// the stale cache entry evicted, not an error. 401/403 mean the tenant is
// inactive on the platform: same treatment. Anything else bubbles up.
func (s *SyncService) SyncTenant(ctx context.Context, tenantID string) error {
	payload, err := s.platform.GetNegotiationSettings(ctx, tenantID)
	if err != nil {
		low := strings.ToLower(err.Error())

		if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") {
			_ = s.repo.LogSyncMiss(ctx, tenantID, 404, "not configured")
			s.evict(ctx, tenantID)
			return nil
		}
		if strings.Contains(low, "401") || strings.Contains(low, "unauthorized") ||
			strings.Contains(low, "403") || strings.Contains(low, "forbidden") {
			_ = s.repo.LogSyncMiss(ctx, tenantID, 403, "inactive")
			s.evict(ctx, tenantID)
			return nil
		}
		return err
	}

	ns := NormalizeSettingsMap(payload)
	if err := s.repo.UpsertSettings(ctx, tenantID, ns); err != nil {
		return fmt.Errorf("upsert settings failed for %s: %w", tenantID, err)
	}
	s.evict(ctx, tenantID)
	return nil
}

func (s *SyncService) evict(ctx context.Context, tenantID string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, settingsKey(tenantID))
	}
}

package domain

import (
	"context"
	"errors"
)

// ErrNotFound marks a tenant without a stored settings document. Loaders treat
// it as "use defaults", never as a failure.
var ErrNotFound = errors.New("not found")

type SettingsRepository interface {
	// Write paths
	UpsertSettings(ctx context.Context, tenantID string, s NegotiationSettings) error
	LogSyncMiss(ctx context.Context, tenantID string, status int, reason string) error

	// Read paths. GetSettingsDoc returns the stored JSON document as-is;
	// normalization into a totally defined value happens in the app layer.
	GetSettingsDoc(ctx context.Context, tenantID string) ([]byte, error)
	ListTenantIDs(ctx context.Context, limit int) ([]string, error)
}

// PlatformClient reads tenant configuration from the SaaS control plane.
type PlatformClient interface {
	GetNegotiationSettings(ctx context.Context, tenantID string) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

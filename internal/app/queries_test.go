package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"staydeal/internal/app"
	"staydeal/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	docs     map[string][]byte
	misses   map[string]int
	upserted map[string]domain.NegotiationSettings
	fail     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:     map[string][]byte{},
		misses:   map[string]int{},
		upserted: map[string]domain.NegotiationSettings{},
	}
}

func (f *fakeRepo) UpsertSettings(ctx context.Context, tenantID string, s domain.NegotiationSettings) error {
	f.upserted[tenantID] = s
	b, _ := json.Marshal(s)
	f.docs[tenantID] = b
	return nil
}

func (f *fakeRepo) LogSyncMiss(ctx context.Context, tenantID string, status int, reason string) error {
	f.misses[tenantID] = status
	return nil
}

func (f *fakeRepo) GetSettingsDoc(ctx context.Context, tenantID string) ([]byte, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	doc, ok := f.docs[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (f *fakeRepo) ListTenantIDs(ctx context.Context, limit int) ([]string, error) {
	var out []string
	for id := range f.docs {
		out = append(out, id)
	}
	return out, nil
}

type fakeCache struct {
	store map[string]domain.NegotiationSettings
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.NegotiationSettings); ok {
		*d = v
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]domain.NegotiationSettings{}
	}
	if ns, ok := v.(domain.NegotiationSettings); ok {
		c.store[key] = ns
	}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

// ---- tests ----

func TestGetSettings_MissingTenantYieldsDefaults(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{}
	svc := app.NewSettingsService(repo, cache, 10*time.Minute)

	ns, err := svc.GetSettings(context.Background(), "t-unknown")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	def := domain.DefaultSettings()
	if ns.MaxDiscountPercentage != def.MaxDiscountPercentage || ns.PixDiscountPercentage != def.PixDiscountPercentage {
		t.Fatalf("expected defaults, got %+v", ns)
	}
	// defaults are not cached
	if len(cache.store) != 0 {
		t.Fatalf("defaults must not be cached: %v", cache.store)
	}
}

func TestGetSettings_CacheMissThenHit(t *testing.T) {
	repo := newFakeRepo()
	repo.docs["t-1"] = []byte(`{"pixDiscountPercentage": 12, "pixDiscountEnabled": true}`)
	cache := &fakeCache{}
	svc := app.NewSettingsService(repo, cache, 10*time.Minute)

	ns, err := svc.GetSettings(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if ns.PixDiscountPercentage != 12 {
		t.Fatalf("unexpected settings: %+v", ns)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.docs["t-1"] = []byte(`{"pixDiscountPercentage": 99}`)

	ns2, err := svc.GetSettings(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if ns2.PixDiscountPercentage != 12 {
		t.Fatalf("expected cached value 12, got %v", ns2.PixDiscountPercentage)
	}
}

func TestGetSettings_StoreFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.fail = errors.New("connection refused")
	svc := app.NewSettingsService(repo, &fakeCache{}, time.Minute)

	if _, err := svc.GetSettings(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected store failure to propagate")
	}
}

func TestUpdateSettings_PersistsAndInvalidates(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{store: map[string]domain.NegotiationSettings{}}
	svc := app.NewSettingsService(repo, cache, time.Minute)

	// warm the cache
	repo.docs["t-1"] = []byte(`{}`)
	if _, err := svc.GetSettings(context.Background(), "t-1"); err != nil {
		t.Fatalf("warm: %v", err)
	}

	ns := domain.DefaultSettings()
	ns.PixDiscountPercentage = 9
	if err := svc.UpdateSettings(context.Background(), "t-1", ns); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := repo.upserted["t-1"].PixDiscountPercentage; got != 9 {
		t.Fatalf("not persisted: %v", got)
	}
	if len(cache.dels) == 0 {
		t.Fatalf("expected cache invalidation")
	}

	ns2, err := svc.GetSettings(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if ns2.PixDiscountPercentage != 9 {
		t.Fatalf("stale read after update: %v", ns2.PixDiscountPercentage)
	}
}

func TestUpdateSettings_RejectsOutOfRange(t *testing.T) {
	svc := app.NewSettingsService(newFakeRepo(), &fakeCache{}, time.Minute)

	ns := domain.DefaultSettings()
	ns.PixDiscountPercentage = 120
	err := svc.UpdateSettings(context.Background(), "t-1", ns)
	if !errors.Is(err, app.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

// ---- sync ----

type fakePlatform struct {
	payload map[string]any
	err     error
}

func (f *fakePlatform) GetNegotiationSettings(ctx context.Context, tenantID string) (map[string]any, error) {
	return f.payload, f.err
}

func TestSyncTenant_UpsertsAndEvicts(t *testing.T) {
	repo := newFakeRepo()
	cache := &fakeCache{store: map[string]domain.NegotiationSettings{"negsettings:t-1": domain.DefaultSettings()}}
	pf := &fakePlatform{payload: map[string]any{"pixDiscountEnabled": true, "pixDiscountPercentage": 7.0}}
	svc := app.NewSyncService(pf, repo, cache)

	if err := svc.SyncTenant(context.Background(), "t-1"); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := repo.upserted["t-1"].PixDiscountPercentage; got != 7 {
		t.Fatalf("not upserted: %v", got)
	}
	if len(cache.dels) == 0 {
		t.Fatalf("expected cache eviction")
	}
}

func TestSyncTenant_NotFoundLogsMiss(t *testing.T) {
	repo := newFakeRepo()
	pf := &fakePlatform{err: errors.New("platform: not found")}
	svc := app.NewSyncService(pf, repo, &fakeCache{})

	if err := svc.SyncTenant(context.Background(), "t-404"); err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if repo.misses["t-404"] != 404 {
		t.Fatalf("expected 404 miss, got %v", repo.misses)
	}
	if _, ok := repo.upserted["t-404"]; ok {
		t.Fatalf("miss must not upsert")
	}
}

func TestSyncTenant_ForbiddenLogsInactive(t *testing.T) {
	repo := newFakeRepo()
	pf := &fakePlatform{err: errors.New("platform: forbidden")}
	svc := app.NewSyncService(pf, repo, &fakeCache{})

	if err := svc.SyncTenant(context.Background(), "t-x"); err != nil {
		t.Fatalf("inactive must not be an error: %v", err)
	}
	if repo.misses["t-x"] != 403 {
		t.Fatalf("expected 403 miss, got %v", repo.misses)
	}
}

func TestSyncTenant_UnexpectedErrorBubbles(t *testing.T) {
	pf := &fakePlatform{err: errors.New("remote 500")}
	svc := app.NewSyncService(pf, newFakeRepo(), &fakeCache{})

	if err := svc.SyncTenant(context.Background(), "t-1"); err == nil {
		t.Fatalf("expected error to bubble")
	}
}

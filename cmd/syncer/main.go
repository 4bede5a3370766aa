package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staydeal/internal/adapters/observability"
	"staydeal/internal/adapters/platform"
	redisad "staydeal/internal/adapters/redis"
	"staydeal/internal/app"
	"staydeal/internal/shared"
	mysqlrepo "staydeal/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.PlatformBase).
		Int("workers", cfg.Workers).
		Int("tenants", len(cfg.TenantIDs)).
		Msg("settings syncer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := platform.New(cfg.PlatformBase, cfg.PlatformKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize platform client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	syncer := app.NewSyncService(client, repo, cache)

	// TENANT_IDS drives a targeted sync; without it, refresh every tenant
	// already known to the local store.
	tenants := cfg.TenantIDs
	if len(tenants) == 0 {
		tenants, err = repo.ListTenantIDs(ctx, 0)
		if err != nil {
			log.Fatal().Err(err).Msg("list tenants failed")
		}
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range tenants {
		id := id

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(tenantID string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := syncer.SyncTenant(ctx, tenantID); err != nil {
				log.Warn().Str("tenant", tenantID).Err(err).Msg("sync failed")
				return
			}
			log.Info().Str("tenant", tenantID).Msg("sync ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("settings sync completed")
}

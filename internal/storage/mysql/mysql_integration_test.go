//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"staydeal/internal/domain"
	mysqlrepo "staydeal/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=staydeal",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "staydeal")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_SettingsRoundTrip(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Absent tenant is a miss, not an error state the caller can't distinguish.
	if _, err := repo.GetSettingsDoc(ctx, "t-absent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	ns := domain.DefaultSettings()
	ns.PixDiscountPercentage = 7.5
	ns.ExtendedStayRules = []domain.StayRule{{MinDays: 10, DiscountPercentage: 6}}
	if err := repo.UpsertSettings(ctx, "t-1", ns); err != nil {
		t.Fatalf("UpsertSettings: %v", err)
	}

	doc, err := repo.GetSettingsDoc(ctx, "t-1")
	if err != nil {
		t.Fatalf("GetSettingsDoc: %v", err)
	}
	var got domain.NegotiationSettings
	if err := json.Unmarshal(doc, &got); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	if got.PixDiscountPercentage != 7.5 || len(got.ExtendedStayRules) != 1 {
		t.Fatalf("unexpected doc: %+v", got)
	}

	// Upsert replaces the document in place.
	ns.PixDiscountPercentage = 9
	if err := repo.UpsertSettings(ctx, "t-1", ns); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	doc, err = repo.GetSettingsDoc(ctx, "t-1")
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if err := json.Unmarshal(doc, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.PixDiscountPercentage != 9 {
		t.Fatalf("upsert did not replace: %+v", got)
	}
}

func TestRepo_ListTenantsAndMisses(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	for _, id := range []string{"t-b", "t-a"} {
		if err := repo.UpsertSettings(ctx, id, domain.DefaultSettings()); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}
	ids, err := repo.ListTenantIDs(ctx, 10)
	if err != nil {
		t.Fatalf("ListTenantIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "t-a" || ids[1] != "t-b" {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if err := repo.LogSyncMiss(ctx, "t-miss", 404, "not configured"); err != nil {
		t.Fatalf("LogSyncMiss: %v", err)
	}
	// same tenant again must update, not fail on the PK
	if err := repo.LogSyncMiss(ctx, "t-miss", 403, "inactive"); err != nil {
		t.Fatalf("LogSyncMiss update: %v", err)
	}
	var status int
	var reason string
	if err := db.QueryRowContext(ctx, "SELECT http_status, reason FROM sync_misses WHERE tenant_id=?", "t-miss").
		Scan(&status, &reason); err != nil {
		t.Fatalf("read miss: %v", err)
	}
	if status != 403 || reason != "inactive" {
		t.Fatalf("miss not updated: %d %s", status, reason)
	}
}

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/restledger/internal/infrastructure/config"
	"github.com/iho/restledger/internal/infrastructure/metrics"
	"github.com/iho/restledger/internal/infrastructure/sqlite"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", driver)
	t.Setenv("REDIS_URL", "")

	cfg, err := config.LoadFiles()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestBuildWithMemoryStorageAndSeed(t *testing.T) {
	cfg := testConfig(t, config.DriverMemory)

	path := filepath.Join(t.TempDir(), "chart.yaml")
	chart := "groups:\n  - name: Current Assets\n    nature: asset\n    accounts:\n      - name: Cash\n        opening_balance: \"10\"\n"
	if err := os.WriteFile(path, []byte(chart), 0o600); err != nil {
		t.Fatalf("write chart: %v", err)
	}
	cfg.SeedFile = path

	a, err := build(context.Background(), cfg, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer a.close()

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Cash"`) {
		t.Fatalf("expected seeded account, got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}
}

func TestBuildWithSQLiteStorage(t *testing.T) {
	cfg := testConfig(t, config.DriverSQLite)
	cfg.SQLitePath = sqlite.MemoryPath

	a, err := build(context.Background(), cfg, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer a.close()

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/groups/", strings.NewReader(`{"name":"Sales","nature":"income"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected group to be created, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestBuildFailsOnMissingSeed(t *testing.T) {
	cfg := testConfig(t, config.DriverMemory)
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := build(context.Background(), cfg, zerolog.Nop(), metrics.New(prometheus.NewRegistry())); err == nil {
		t.Fatal("expected build to fail")
	}
}

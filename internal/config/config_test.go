package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/bdgeo/internal/domain"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("expected DefaultLimit=10, got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("expected MaxLimit=100, got %d", cfg.Search.MaxLimit)
	}
	if *cfg.Search.DefaultThreshold != 0.3 {
		t.Errorf("expected DefaultThreshold=0.3, got %f", *cfg.Search.DefaultThreshold)
	}
	if *cfg.Search.FuzzyThreshold != 0.4 {
		t.Errorf("expected FuzzyThreshold=0.4, got %f", *cfg.Search.FuzzyThreshold)
	}
	if cfg.Search.MaxQueryLength != 256 {
		t.Errorf("expected MaxQueryLength=256, got %d", cfg.Search.MaxQueryLength)
	}
	if cfg.Stats.TopQueriesCapacity != 100 || cfg.Stats.ZeroResultsCapacity != 100 {
		t.Errorf("unexpected stats defaults: %+v", cfg.Stats)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	zero := 0.0
	cfg := Config{
		HTTP:   HTTPConfig{Port: 9000, ReadTimeoutSec: 30},
		Search: SearchConfig{DefaultLimit: 5, DefaultThreshold: &zero},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("expected DefaultLimit=5, got %d", cfg.Search.DefaultLimit)
	}
	// an explicit zero threshold is a value, not "unset"
	if *cfg.Search.DefaultThreshold != 0 {
		t.Errorf("expected DefaultThreshold=0, got %f", *cfg.Search.DefaultThreshold)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_SearchOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative limit", func(c *Config) { c.Search.DefaultLimit = -1 }},
		{"threshold above one", func(c *Config) { c.Search.DefaultThreshold = ptr(1.5) }},
		{"threshold below zero", func(c *Config) { c.Search.DefaultThreshold = ptr(-0.1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, domain.ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestValidate_FuzzyThreshold(t *testing.T) {
	cfg := Default()
	cfg.Search.FuzzyThreshold = ptr(2.0)
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for fuzzy threshold")
	}
	if !strings.Contains(err.Error(), "fuzzy_threshold") {
		t.Errorf("error = %q", err)
	}
}

func TestValidate_MaxLimitBelowDefault(t *testing.T) {
	cfg := Default()
	cfg.Search.MaxLimit = 5
	cfg.Search.DefaultLimit = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when max_limit < default_limit")
	}
}

func TestSearchDefaults(t *testing.T) {
	cfg := Default()
	cfg.Search.DefaultLimit = 7
	cfg.Search.DefaultThreshold = ptr(0.5)
	cfg.Search.CaseSensitive = true

	opts := cfg.SearchDefaults()
	if opts.Limit != 7 || opts.Threshold != 0.5 || !opts.CaseSensitive {
		t.Errorf("SearchDefaults() = %+v", opts)
	}
	if !opts.IncludeEnglish || !opts.IncludeBengali || !opts.IncludeSlug {
		t.Error("field flags should stay enabled")
	}
	if cfg.FuzzyThreshold() != 0.4 {
		t.Errorf("FuzzyThreshold() = %f", cfg.FuzzyThreshold())
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("BDGEO_TEST_PORT", "9191")
	data := []byte(`
http:
  port: ${BDGEO_TEST_PORT}
catalog:
  dir: ${BDGEO_TEST_UNSET:-/srv/catalog}
search:
  default_threshold: 0.45
auth:
  api_keys: ["k1"]
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9191 {
		t.Errorf("Port = %d, want 9191", cfg.HTTP.Port)
	}
	if cfg.Catalog.Dir != "/srv/catalog" {
		t.Errorf("Catalog.Dir = %q, want default", cfg.Catalog.Dir)
	}
	if *cfg.Search.DefaultThreshold != 0.45 {
		t.Errorf("DefaultThreshold = %f", *cfg.Search.DefaultThreshold)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "k1" {
		t.Errorf("APIKeys = %v", cfg.Auth.APIKeys)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected YAML error")
	}
	if _, err := Parse([]byte("search:\n  default_threshold: 3\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 8181\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8181 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if GetEnv() != "local" {
		t.Errorf("GetEnv() = %q, want local", GetEnv())
	}
	t.Setenv("ENV", "prod")
	if GetEnv() != "prod" {
		t.Errorf("GetEnv() = %q, want prod", GetEnv())
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("JOBSINK_DB", "/tmp/custom.db")
	t.Setenv("JOBSINK_REGION", "all")
	t.Setenv("JOBSINK_PAGES", "3")
	t.Setenv("JOBSINK_LIMIT", "not-a-number")

	cfg := DefaultConfig()
	if cfg.DBPath != "/tmp/custom.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.Region != "all" {
		t.Fatalf("region = %q", cfg.Region)
	}
	if cfg.Pages != 3 {
		t.Fatalf("pages = %d", cfg.Pages)
	}
	if cfg.Limit != 200 {
		t.Fatalf("unparsable int should keep the default, got %d", cfg.Limit)
	}
}

func TestDefaultConfigFallbacks(t *testing.T) {
	for _, key := range []string{
		"JOBSINK_DB", "JOBSINK_REGION", "JOBSINK_PAGES",
		"JOBSINK_LIMIT", "JOBSINK_WHERE", "JOBSINK_DEFAULT_QUERY",
	} {
		t.Setenv(key, "")
	}

	cfg := DefaultConfig()
	if cfg.DBPath != "jobsink.db" || cfg.Region != "us" {
		t.Fatalf("defaults = %q/%q", cfg.DBPath, cfg.Region)
	}
	if cfg.Pages != 1 || cfg.Limit != 200 {
		t.Fatalf("defaults = %d/%d", cfg.Pages, cfg.Limit)
	}
	if cfg.Where != "United States" {
		t.Fatalf("where default = %q", cfg.Where)
	}
}

func TestLoadProxiesFromFlag(t *testing.T) {
	proxies, err := LoadProxies("http://p1:8080, http://p2:8080 ,")
	if err != nil {
		t.Fatalf("load proxies: %v", err)
	}
	if len(proxies) != 2 || proxies[0] != "http://p1:8080" || proxies[1] != "http://p2:8080" {
		t.Fatalf("proxies = %v", proxies)
	}
}

func TestLoadProxiesFromEnv(t *testing.T) {
	t.Setenv("JOBSINK_PROXIES", "http://env:8080")

	proxies, err := LoadProxies("")
	if err != nil {
		t.Fatalf("load proxies: %v", err)
	}
	if len(proxies) != 1 || proxies[0] != "http://env:8080" {
		t.Fatalf("proxies = %v", proxies)
	}
}

func TestLoadCompanies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.json")

	// json5 rosters with comments and trailing commas are accepted.
	roster := `[
		// board-hosted companies
		{"name": "Acme", "greenhouse": "acme"},
		{"name": "Beta", "lever": "beta"},
	]`
	if err := os.WriteFile(path, []byte(roster), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	companies, err := LoadCompanies(path)
	if err != nil {
		t.Fatalf("load companies: %v", err)
	}
	if len(companies) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(companies))
	}
	if companies[0].Greenhouse != "acme" || companies[1].Lever != "beta" {
		t.Fatalf("companies = %v", companies)
	}
}

func TestLoadCompaniesExplicitPathMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")
	if _, err := LoadCompanies(missing); err == nil {
		t.Fatalf("explicit missing roster path should error")
	}
}

func TestSplitCSV(t *testing.T) {
	out := splitCSV(" a, ,b,,c ")
	if len(out) != 3 || out[0] != "a" || out[1] != "b" || out[2] != "c" {
		t.Fatalf("splitCSV = %v", out)
	}
}

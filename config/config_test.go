package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
sources:
  airports_url: "http://example.test/airport.csv"
  frequencies_url: ""
local_csv_paths:
  airports: "`+filepath.Join(dir, "in", "airport.csv")+`"
  frequencies: "`+filepath.Join(dir, "in", "frequency.csv")+`"
output:
  json_path: "`+filepath.Join(dir, "out", "airports.json")+`"
http:
  timeout: "5s"
database:
  host: "db.local"
  port: "3307"
  dbname: "freqs"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Sources.AirportsURL != "http://example.test/airport.csv" {
		t.Fatalf("AirportsURL = %q", cfg.Sources.AirportsURL)
	}
	if cfg.Sources.FrequenciesURL != "" {
		t.Fatalf("FrequenciesURL = %q, want empty (explicitly cleared)", cfg.Sources.FrequenciesURL)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want 5s", cfg.HTTP.Timeout)
	}
	if !cfg.Database.Enabled() || cfg.Database.Port != "3307" || cfg.Database.DBName != "freqs" {
		t.Fatalf("unexpected database config %+v", cfg.Database)
	}
	// Unset sections keep their defaults.
	if cfg.Server.Port != "8080" {
		t.Fatalf("Server.Port = %q, want default 8080", cfg.Server.Port)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err != nil {
		t.Fatalf("output directory was not created: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
local_csv_paths:
  airports: "`+filepath.Join(dir, "airport.csv")+`"
  frequencies: "`+filepath.Join(dir, "frequency.csv")+`"
output:
  json_path: "`+filepath.Join(dir, "from-file.json")+`"
`)

	t.Setenv("OUTPUT_JSON", filepath.Join(dir, "from-env.json"))
	t.Setenv("FREQUENCIES_URL", "http://mirror.test/frequency.csv")
	t.Setenv("DB_HOST", "mysql")
	t.Setenv("HTTP_TIMEOUT", "1m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Output.JSONPath != filepath.Join(dir, "from-env.json") {
		t.Fatalf("JSONPath = %q, want env value", cfg.Output.JSONPath)
	}
	if cfg.Sources.FrequenciesURL != "http://mirror.test/frequency.csv" {
		t.Fatalf("FrequenciesURL = %q, want env value", cfg.Sources.FrequenciesURL)
	}
	if cfg.Sources.AirportsURL != DefaultAirportsURL {
		t.Fatalf("AirportsURL = %q, want default", cfg.Sources.AirportsURL)
	}
	if cfg.Database.Host != "mysql" || cfg.HTTP.Timeout != time.Minute {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Database, cfg.HTTP)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"bad yaml":    "sources: [",
		"bad timeout": "http:\n  timeout: \"soon\"\n",
		"no output": `
output:
  json_path: ""
`,
		"url without local path": `
local_csv_paths:
  airports: ""
  frequencies: "` + filepath.Join(dir, "f.csv") + `"
`,
		"no airport source": `
sources:
  airports_url: ""
local_csv_paths:
  airports: ""
`,
	}
	for name, body := range tests {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Sources.AirportsURL != DefaultAirportsURL || cfg.Sources.FrequenciesURL != DefaultFrequenciesURL {
		t.Fatalf("unexpected default sources %+v", cfg.Sources)
	}
	if cfg.Output.JSONPath != DefaultOutputJSON {
		t.Fatalf("JSONPath = %q, want %q", cfg.Output.JSONPath, DefaultOutputJSON)
	}
	if cfg.Database.Enabled() {
		t.Fatal("database must be disabled by default")
	}
}

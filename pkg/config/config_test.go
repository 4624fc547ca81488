package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Country != "BR" {
		t.Errorf("expected default country BR, got %q", cfg.Country)
	}
	if cfg.Ingest.Parallelism != 1 {
		t.Errorf("expected default parallelism 1, got %d", cfg.Ingest.Parallelism)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("expected default storage backend local, got %q", cfg.Storage.Backend)
	}
	if cfg.Store.DatabaseURL != "" {
		t.Errorf("expected no default database URL, got %q", cfg.Store.DatabaseURL)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.Country != "BR" {
					t.Errorf("expected default country BR, got %q", cfg.Country)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
country: CO
scoring:
  speed_weight: 0.5
  download_target_mbps: 100
ingest:
  verbose: true
  parallelism: 8
storage:
  backend: s3
  s3_bucket: connectivity-archive
store:
  database_url: postgres://localhost/mapper
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Country != "CO" {
					t.Errorf("expected country CO, got %q", cfg.Country)
				}
				if cfg.Scoring.SpeedWeight != 0.5 {
					t.Errorf("expected speed weight 0.5, got %v", cfg.Scoring.SpeedWeight)
				}
				if !cfg.Ingest.Verbose || cfg.Ingest.Parallelism != 8 {
					t.Errorf("ingest config = %+v", cfg.Ingest)
				}
				if cfg.Storage.Backend != "s3" || cfg.Storage.S3Bucket != "connectivity-archive" {
					t.Errorf("storage config = %+v", cfg.Storage)
				}
				if cfg.Store.DatabaseURL != "postgres://localhost/mapper" {
					t.Errorf("store config = %+v", cfg.Store)
				}
			},
		},
		{
			name: "partial YAML keeps remaining defaults",
			yaml: "country: MX\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Country != "MX" {
					t.Errorf("expected country MX, got %q", cfg.Country)
				}
				if cfg.Storage.Backend != "local" {
					t.Errorf("expected default backend, got %q", cfg.Storage.Backend)
				}
			},
		},
		{
			name:    "invalid YAML errors",
			yaml:    "country: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.yaml != "" {
				if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgDir := filepath.Join(root, ".ruralmapper")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("country: BR\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(nested); got != cfgPath {
		t.Errorf("FindConfigFile(%q) = %q, want %q", nested, got, cfgPath)
	}

	if got := FindConfigFile(t.TempDir()); got != "" {
		t.Errorf("FindConfigFile with no config = %q, want empty", got)
	}
}

func TestWeightsMergesOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.SpeedWeight = 0.6
	cfg.Scoring.DownloadTarget = 100

	w := cfg.Weights()
	if w.SpeedWeight != 0.6 {
		t.Errorf("SpeedWeight = %v, want override 0.6", w.SpeedWeight)
	}
	if w.DownloadTargetMbps != 100 {
		t.Errorf("DownloadTargetMbps = %v, want override 100", w.DownloadTargetMbps)
	}
	// Untouched constants keep the contract defaults.
	if w.LatencyWeight != 0.30 || w.UploadTargetMbps != 20 {
		t.Errorf("defaults disturbed: %+v", w)
	}
	if w.LatencyBaseMs != 20 || w.LatencyFalloffPerMs != 1.25 {
		t.Errorf("latency constants disturbed: %+v", w)
	}
}

func TestCountryRegistry(t *testing.T) {
	codes := SupportedCountries()
	if len(codes) != 5 {
		t.Fatalf("got %d countries, want 5", len(codes))
	}
	// Sorted by code.
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %v", codes)
		}
	}

	br, ok := CountryByCode("BR")
	if !ok {
		t.Fatal("BR missing from registry")
	}
	if br.Name != "Brazil" {
		t.Errorf("BR name = %q, want Brazil", br.Name)
	}

	if _, ok := CountryByCode("XX"); ok {
		t.Error("CountryByCode(XX) = ok, want miss")
	}

	providers := KnownProviders("BR")
	if len(providers) == 0 {
		t.Fatal("no known providers for BR")
	}
	found := false
	for _, p := range providers {
		if p == "Starlink" {
			found = true
		}
	}
	if !found {
		t.Errorf("Starlink missing from BR providers: %v", providers)
	}

	if got := KnownProviders("XX"); got != nil {
		t.Errorf("KnownProviders(XX) = %v, want nil", got)
	}
}

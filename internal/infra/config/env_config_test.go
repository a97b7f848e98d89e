package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/AyoPrez/sobuu-sub000/internal/infra/config"
)

type testConfig struct {
	EnvConfig

	BaseURL  string        `env:"BASE_URL" default:"https://parse.example.test/"`
	Retries  int           `env:"RETRIES" default:"0"`
	Verbose  bool          `env:"VERBOSE" default:"false"`
	Timeout  time.Duration `env:"TIMEOUT" default:"30s"`
	MaxRate  float64       `env:"MAX_RATE" default:"10"`
	Backends []string      `env:"BACKENDS" default:"sqlite,memory"`
	Internal string
	Store    testStoreConfig `envPrefix:"STORE_"`
}

type testStoreConfig struct {
	Backend string `env:"BACKEND" default:"memory"`
}

type requiredConfig struct {
	EnvConfig

	AppID string `env:"APPLICATION_ID"`
}

func defaults() testConfig {
	return testConfig{
		BaseURL:  "https://parse.example.test/",
		Timeout:  30 * time.Second,
		MaxRate:  10,
		Backends: []string{"sqlite", "memory"},
		Store:    testStoreConfig{Backend: "memory"},
	}
}

//nolint:paralleltest
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		envVars map[string]string
		want    func(cfg *testConfig)
		wantErr bool
	}{
		{
			name:    "uses default values when env vars not set",
			envVars: map[string]string{},
			want:    func(*testConfig) {},
		},
		{
			name: "reads environment variables",
			envVars: map[string]string{
				"BASE_URL":      "https://other.test/",
				"RETRIES":       "3",
				"VERBOSE":       "true",
				"TIMEOUT":       "1m30s",
				"MAX_RATE":      "2.5",
				"STORE_BACKEND": "sqlite",
				"BACKENDS":      " redis, ,memory ",
			},
			want: func(cfg *testConfig) {
				cfg.BaseURL = "https://other.test/"
				cfg.Retries = 3
				cfg.Verbose = true
				cfg.Timeout = 90 * time.Second
				cfg.MaxRate = 2.5
				cfg.Store.Backend = "sqlite"
				cfg.Backends = []string{"redis", "memory"}
			},
		},
		{
			name:   "prefers more specific prefix",
			prefix: "SOBUU_CLI",
			envVars: map[string]string{
				"SOBUU_BASE_URL":     "https://less.test/",
				"SOBUU_CLI_BASE_URL": "https://more.test/",
			},
			want: func(cfg *testConfig) {
				cfg.BaseURL = "https://more.test/"
			},
		},
		{
			name:   "falls back to shorter prefix",
			prefix: "SOBUU_CLI",
			envVars: map[string]string{
				"SOBUU_STORE_BACKEND": "redis",
			},
			want: func(cfg *testConfig) {
				cfg.Store.Backend = "redis"
			},
		},
		{
			name:    "fails on invalid duration",
			envVars: map[string]string{"TIMEOUT": "thirty"},
			wantErr: true,
		},
		{
			name:    "fails on invalid float",
			envVars: map[string]string{"MAX_RATE": "fast"},
			wantErr: true,
		},
		{
			name:    "fails on invalid bool",
			envVars: map[string]string{"VERBOSE": "sometimes"},
			wantErr: true,
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := &testConfig{}
			err := Parse(ctx, cfg, tt.prefix)

			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				return
			}

			want := defaults()
			tt.want(&want)

			if cfg.BaseURL != want.BaseURL {
				t.Errorf("BaseURL = %v, want %v", cfg.BaseURL, want.BaseURL)
			}
			if cfg.Retries != want.Retries {
				t.Errorf("Retries = %v, want %v", cfg.Retries, want.Retries)
			}
			if cfg.Verbose != want.Verbose {
				t.Errorf("Verbose = %v, want %v", cfg.Verbose, want.Verbose)
			}
			if cfg.Timeout != want.Timeout {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, want.Timeout)
			}
			if cfg.MaxRate != want.MaxRate {
				t.Errorf("MaxRate = %v, want %v", cfg.MaxRate, want.MaxRate)
			}
			if strings.Join(cfg.Backends, ",") != strings.Join(want.Backends, ",") {
				t.Errorf("Backends = %v, want %v", cfg.Backends, want.Backends)
			}
			if cfg.Internal != "" {
				t.Errorf("Internal = %v, want empty", cfg.Internal)
			}
			if cfg.Store.Backend != want.Store.Backend {
				t.Errorf("Store.Backend = %v, want %v", cfg.Store.Backend, want.Store.Backend)
			}
			if cfg.Namespace() != tt.prefix {
				t.Errorf("Namespace() = %v, want %v", cfg.Namespace(), tt.prefix)
			}
		})
	}
}

//nolint:paralleltest
func TestParseRequiredVar(t *testing.T) {
	cfg := &requiredConfig{}

	err := Parse(context.Background(), cfg, "SOBUU_TEST_REQUIRED")
	if !errors.Is(err, ErrVarNotSet) {
		t.Fatalf("expected ErrVarNotSet, got %v", err)
	}

	t.Setenv("SOBUU_TEST_REQUIRED_APPLICATION_ID", "app")

	if err := Parse(context.Background(), cfg, "SOBUU_TEST_REQUIRED"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppID != "app" {
		t.Errorf("AppID = %q, want %q", cfg.AppID, "app")
	}
}

//nolint:paralleltest
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")

	if err := os.WriteFile(envFile, []byte("SOBUU_LOADTEST_BASE_URL=https://dotenv.test/\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// godotenv writes into the process env, register cleanup through t.Setenv
	t.Setenv("SOBUU_LOADTEST_BASE_URL", "")
	os.Unsetenv("SOBUU_LOADTEST_BASE_URL")

	cfg := &testConfig{}
	if err := Load(context.Background(), cfg, "SOBUU_LOADTEST", filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseURL != "https://dotenv.test/" {
		t.Errorf("BaseURL = %q, want value from .env", cfg.BaseURL)
	}
}

func TestParseInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  interface{}
	}{
		{
			name: "non-pointer config",
			cfg:  testConfig{},
		},
		{
			name: "non-struct pointer",
			cfg:  new(string),
		},
		{
			name: "missing EnvConfig embedding",
			cfg: &struct {
				Value string `env:"VALUE"`
			}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Parse(context.Background(), tt.cfg, "")
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected error %v, got %v", ErrInvalidConfig, err)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:      "sqlite",
				SQLiteDBPath:     "./test.db",
				BcryptCost:       10,
				HistoryCacheSize: 16,
				HistoryCacheTTL:  5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				DataBackend:      "memory",
				BcryptCost:       10,
				HistoryCacheSize: 16,
				HistoryCacheTTL:  5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "invalid data backend",
			config: Config{
				DataBackend:      "postgres",
				BcryptCost:       10,
				HistoryCacheSize: 16,
				HistoryCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [sqlite memory]",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				DataBackend:      "sqlite",
				SQLiteDBPath:     "",
				BcryptCost:       10,
				HistoryCacheSize: 16,
				HistoryCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "bcrypt cost too low",
			config: Config{
				DataBackend:      "memory",
				BcryptCost:       2,
				HistoryCacheSize: 16,
				HistoryCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid bcrypt cost 2",
		},
		{
			name: "bcrypt cost too high",
			config: Config{
				DataBackend:      "memory",
				BcryptCost:       99,
				HistoryCacheSize: 16,
				HistoryCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid bcrypt cost 99",
		},
		{
			name: "history cache size too small",
			config: Config{
				DataBackend:      "memory",
				BcryptCost:       10,
				HistoryCacheSize: 0,
				HistoryCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid history cache size 0",
		},
		{
			name: "history cache TTL too short",
			config: Config{
				DataBackend:      "memory",
				BcryptCost:       10,
				HistoryCacheSize: 16,
				HistoryCacheTTL:  100 * time.Millisecond,
			},
			wantErr:     true,
			errorString: "invalid history cache TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDBDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{
		DataBackend:      "sqlite",
		SQLiteDBPath:     filepath.Join(dir, "gastos.db"),
		BcryptCost:       10,
		HistoryCacheSize: 16,
		HistoryCacheTTL:  5 * time.Minute,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected database directory to be created: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_BACKEND", "SQLITE_DB_PATH", "BCRYPT_COST", "HISTORY_CACHE_SIZE", "HISTORY_CACHE_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("expected sqlite default backend, got %q", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath != "./data/gastos.db" {
		t.Fatalf("unexpected default db path %q", cfg.SQLiteDBPath)
	}
	if cfg.HistoryCacheSize != 16 {
		t.Fatalf("unexpected default cache size %d", cfg.HistoryCacheSize)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("HISTORY_CACHE_TTL", "90s")

	cfg := Load()
	if cfg.DataBackend != "memory" {
		t.Fatalf("expected memory backend, got %q", cfg.DataBackend)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.HistoryCacheTTL != 90*time.Second {
		t.Fatalf("expected 90s TTL, got %v", cfg.HistoryCacheTTL)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "parkhub"
  environment: "test"
auth:
  jwt_secret: "test-secret"
database:
  path: "test.db"
http:
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "parkhub" {
		t.Errorf("expected app name parkhub, got %s", cfg.App.Name)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.HTTP.Port)
	}
	if cfg.Auth.TokenTTLMin != 60 {
		t.Errorf("expected default token ttl 60, got %d", cfg.Auth.TokenTTLMin)
	}
	if cfg.Notifications.QueueKey != "notify:queue" {
		t.Errorf("expected default queue key, got %s", cfg.Notifications.QueueKey)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("PARKHUB_TEST_SECRET", "from-env")

	yamlContent := `
auth:
  jwt_secret: "${PARKHUB_TEST_SECRET}"
database:
  path: "test.db"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("expected secret from env, got %s", cfg.Auth.JWTSecret)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Auth:     AuthConfig{JWTSecret: "secret"},
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: false,
		},
		{
			name: "missing database path",
			cfg: Config{
				Auth: AuthConfig{JWTSecret: "secret"},
			},
			wantErr: true,
		},
		{
			name: "missing jwt secret",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

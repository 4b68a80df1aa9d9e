package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var configKeys = []string{
	"PORT", "ALLOWED_ORIGIN", "LOG_LEVEL", "LOG_FORMAT", "SETTINGS_FILE",
	"MUSICSTATS_SERVER", "MUSICSTATS_TOKEN", "STATION", "STATION_NAME",
	"METADATA_TOKEN", "SKILL_ID",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("SETTINGS_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MUSICSTATS_SERVER", "solidradio.example.org")
	t.Setenv("MUSICSTATS_TOKEN", "secret")
	t.Setenv("STATION", "Solid Radio")
	t.Setenv("METADATA_TOKEN", "meta")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("AllowedOrigin = %q, want *", cfg.AllowedOrigin)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Station != "Solid Radio" {
		t.Errorf("Station = %q", cfg.Station)
	}
	if cfg.StationName != "Solid Radio" {
		t.Errorf("StationName = %q, want fallback to station key", cfg.StationName)
	}
	if cfg.MetadataToken != "meta" {
		t.Errorf("MetadataToken = %q", cfg.MetadataToken)
	}
}

func TestLoad_SettingsFileFillsGaps(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, `
server: settings.example.org
token: file-token
station: Solid Radio
stationName: Solid Radio FM
metadata_token: file-meta
`)
	t.Setenv("SETTINGS_FILE", path)
	t.Setenv("MUSICSTATS_TOKEN", "env-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server != "settings.example.org" {
		t.Errorf("Server = %q, want value from settings", cfg.Server)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, environment should win", cfg.Token)
	}
	if cfg.StationName != "Solid Radio FM" {
		t.Errorf("StationName = %q", cfg.StationName)
	}
	if cfg.MetadataToken != "file-meta" {
		t.Errorf("MetadataToken = %q", cfg.MetadataToken)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "no server",
			env:     map[string]string{"MUSICSTATS_TOKEN": "t", "STATION": "s"},
			wantErr: ErrMissingServer,
		},
		{
			name:    "no token",
			env:     map[string]string{"MUSICSTATS_SERVER": "h", "STATION": "s"},
			wantErr: ErrMissingToken,
		},
		{
			name:    "no station",
			env:     map[string]string{"MUSICSTATS_SERVER": "h", "MUSICSTATS_TOKEN": "t"},
			wantErr: ErrMissingStation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := writeSettings(t, "server: [unterminated")
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("LoadSettings() expected error for invalid YAML")
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"solidradio.example.org", "https://solidradio.example.org"},
		{"solidradio.example.org/", "https://solidradio.example.org"},
		{"http://127.0.0.1:9000", "http://127.0.0.1:9000"},
		{"https://solidradio.example.org/", "https://solidradio.example.org"},
	}
	for _, tt := range tests {
		got := Config{Server: tt.server}.ServerURL()
		if got != tt.want {
			t.Errorf("ServerURL(%q) = %q, want %q", tt.server, got, tt.want)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every URL2QR_* variable so host settings never leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"URL2QR_PORT",
		"URL2QR_OUTPUT_DIR",
		"URL2QR_PUBLIC_BASE_URL",
		"URL2QR_SESSION_TIMEOUT",
		"URL2QR_SWEEP_INTERVAL",
		"URL2QR_DATABASE_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// emptyConfigFile returns a path to an empty config so the user's real
// ~/.config file is never read.
func emptyConfigFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := GetConfig(emptyConfigFile(t))
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}
	if time.Duration(cfg.SessionTimeout) != DefaultSessionTimeout {
		t.Errorf("SessionTimeout = %s, want %s", time.Duration(cfg.SessionTimeout), DefaultSessionTimeout)
	}
	if time.Duration(cfg.SweepInterval) != DefaultSweepInterval {
		t.Errorf("SweepInterval = %s, want %s", time.Duration(cfg.SweepInterval), DefaultSweepInterval)
	}
	if cfg.DatabasePath != filepath.Join(DefaultOutputDir, "url2qr.db") {
		t.Errorf("DatabasePath = %q, want default under output dir", cfg.DatabasePath)
	}
}

func TestGetConfigFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := strings.Join([]string{
		"port: 8080",
		"output_dir: /tmp/qr-out",
		"public_base_url: https://qr.example.com",
		"session_timeout: 10m",
		"sweep_interval: 30s",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := GetConfig(path)
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.PublicBaseURL != "https://qr.example.com" {
		t.Errorf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
	if time.Duration(cfg.SessionTimeout) != 10*time.Minute {
		t.Errorf("SessionTimeout = %s, want 10m", time.Duration(cfg.SessionTimeout))
	}
	if time.Duration(cfg.SweepInterval) != 30*time.Second {
		t.Errorf("SweepInterval = %s, want 30s", time.Duration(cfg.SweepInterval))
	}
}

func TestGetConfigEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("port: 8080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("URL2QR_PORT", "9090")
	t.Setenv("URL2QR_SESSION_TIMEOUT", "5m")

	cfg, err := GetConfig(path)
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want env override 9090", cfg.Port)
	}
	if time.Duration(cfg.SessionTimeout) != 5*time.Minute {
		t.Errorf("SessionTimeout = %s, want 5m", time.Duration(cfg.SessionTimeout))
	}
}

func TestGetConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"URL2QR_PORT": "70000"}},
		{name: "bad port", env: map[string]string{"URL2QR_PORT": "abc"}},
		{name: "bad base url", env: map[string]string{"URL2QR_PUBLIC_BASE_URL": "not-a-url"}},
		{name: "bad timeout", env: map[string]string{"URL2QR_SESSION_TIMEOUT": "soon"}},
		{name: "interval exceeds timeout", env: map[string]string{
			"URL2QR_SESSION_TIMEOUT": "30s",
			"URL2QR_SWEEP_INTERVAL":  "60s",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := GetConfig(emptyConfigFile(t)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("custom path wins", func(t *testing.T) {
		got, err := resolveConfigPath("/etc/url2qr/config.yaml")
		if err != nil {
			t.Fatalf("resolveConfigPath() error = %v", err)
		}
		if got != "/etc/url2qr/config.yaml" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("defaults under home config dir", func(t *testing.T) {
		got, err := resolveConfigPath("")
		if err != nil {
			t.Fatalf("resolveConfigPath() error = %v", err)
		}
		want := filepath.Join(".config", AppName, "config.yaml")
		if !strings.HasSuffix(got, want) {
			t.Errorf("got %q, want suffix %q", got, want)
		}
	})
}

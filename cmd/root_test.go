package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig points every path-like setting into t.TempDir so no
// real user config or database is touched.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")
	body := strings.Join([]string{
		"port: 3111",
		"output_dir: " + outputDir,
		"database_path: " + filepath.Join(dir, "history.db"),
	}, "\n")
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, outputDir
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	path, _ := writeTestConfig(t)
	cli := &CLI{ConfigPath: path}

	cfg, err := loadConfig(cli, 0, "")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Port != 3111 {
		t.Errorf("Port = %d, want 3111 from file", cfg.Port)
	}

	cfg, err = loadConfig(cli, 9999, "/elsewhere")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want flag override 9999", cfg.Port)
	}
	if cfg.OutputDir != "/elsewhere" {
		t.Errorf("OutputDir = %q, want flag override", cfg.OutputDir)
	}
}

func TestGenerateCmdWritesArtifact(t *testing.T) {
	path, outputDir := writeTestConfig(t)
	cli := &CLI{ConfigPath: path}

	g := &GenerateCmd{URL: "https://example.com"}
	if err := g.Run(cli); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("output dir missing: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "qrcode-") && strings.HasSuffix(e.Name(), ".png") {
			found = true
		}
	}
	if !found {
		t.Fatal("no qrcode-*.png artifact written")
	}
}

func TestGenerateCmdRejectsBadURL(t *testing.T) {
	path, _ := writeTestConfig(t)
	cli := &CLI{ConfigPath: path}

	g := &GenerateCmd{URL: "not-a-url"}
	err := g.Run(cli)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "Invalid URL format") {
		t.Errorf("error = %v", err)
	}
}

func TestHistoryCmdRejectsBadFormat(t *testing.T) {
	path, _ := writeTestConfig(t)
	cli := &CLI{ConfigPath: path}

	h := &HistoryCmd{Limit: 5, Format: "xml"}
	if err := h.Run(cli); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestVersionCmd(t *testing.T) {
	v := &VersionCmd{}
	if err := v.Run(&CLI{}); err != nil {
		t.Fatalf("version failed: %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, file, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShortStoryLength != 25 {
		t.Errorf("short story length: got %d, want default 25", cfg.ShortStoryLength)
	}
	if len(file.Webhooks) != 0 {
		t.Errorf("expected no webhooks, got %v", file.Webhooks)
	}
}

func TestLoad_AppliesOverrides(t *testing.T) {
	path := writeConfig(t, `
scoring:
  short_story_length: 30
  ambiguous_keywords: ["perhaps"]
webhooks:
  - name: alerts
    url: https://hooks.example.com/storylint
    enabled: true
    only_below: 71
`)

	cfg, file, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ShortStoryLength != 30 {
		t.Errorf("short story length: got %d, want 30", cfg.ShortStoryLength)
	}
	if len(cfg.AmbiguousKeywords) != 1 || cfg.AmbiguousKeywords[0] != "perhaps" {
		t.Errorf("ambiguous keywords: got %v", cfg.AmbiguousKeywords)
	}
	// Untouched fields keep defaults.
	if cfg.LongStoryLength != 200 {
		t.Errorf("long story length: got %d, want default 200", cfg.LongStoryLength)
	}
	if len(file.Webhooks) != 1 || file.Webhooks[0].OnlyBelow != 71 {
		t.Errorf("webhooks: got %+v", file.Webhooks)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
scoring:
  shrot_story_length: 30
`)

	if _, _, err := Load(path); err == nil {
		t.Error("expected error for misspelled key")
	} else if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_RejectsBadBandOrder(t *testing.T) {
	path := writeConfig(t, `
scoring:
  bands:
    - threshold: 90
      label: Ready
      summary: Good to go.
    - threshold: 50
      label: Close
      summary: Almost there.
`)

	if _, _, err := Load(path); err == nil {
		t.Error("expected error when last band threshold is not 0")
	}
}

func TestLoad_RejectsBadPattern(t *testing.T) {
	path := writeConfig(t, `
scoring:
  format_pattern: "("
`)

	if _, _, err := Load(path); err == nil {
		t.Error("expected error for invalid regex")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := WriteDefault(path); err != nil {
		t.Fatalf("write default: %v", err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("load starter config: %v", err)
	}
	if cfg.ShortStoryLength != 25 {
		t.Errorf("starter config changed defaults: %d", cfg.ShortStoryLength)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected refusal to overwrite existing config")
	}
}

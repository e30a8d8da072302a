package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider.Type != "ollama" {
		t.Errorf("default provider = %q, want ollama", cfg.Provider.Type)
	}
	if cfg.Agent.MaxSteps != 8 {
		t.Errorf("default max steps = %d, want 8", cfg.Agent.MaxSteps)
	}
	if cfg.Agent.TimeoutSeconds != 60 {
		t.Errorf("default timeout = %d, want 60", cfg.Agent.TimeoutSeconds)
	}

	if !FileExists(GetSettingsFilePath()) {
		t.Error("Load() should write the default settings file")
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "tabla")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	content := `
data_directory = "~/custom"

[provider]
type = "anthropic"
model = "claude-sonnet-4-5-20250929"

[agent]
max_steps = 3
timeout_seconds = 10
`
	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider.Type != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider.Type)
	}
	if cfg.Agent.MaxSteps != 3 {
		t.Errorf("max steps = %d", cfg.Agent.MaxSteps)
	}
	if cfg.DataDir() != filepath.Join(home, "custom") {
		t.Errorf("DataDir() = %q", cfg.DataDir())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABLA_PROVIDER", "openai")
	t.Setenv("TABLA_MODEL", "gpt-4o-mini")
	t.Setenv("TABLA_MAX_STEPS", "12")
	t.Setenv("TABLA_TIMEOUT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider.Type != "openai" {
		t.Errorf("provider = %q, want env override", cfg.Provider.Type)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.Provider.Model)
	}
	if cfg.Agent.MaxSteps != 12 || cfg.Agent.TimeoutSeconds != 5 {
		t.Errorf("agent overrides = %+v", cfg.Agent)
	}
}

func TestEnvOverridesIgnoreInvalidNumbers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABLA_MAX_STEPS", "lots")
	t.Setenv("TABLA_TIMEOUT", "-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Agent.MaxSteps != 8 || cfg.Agent.TimeoutSeconds != 60 {
		t.Errorf("invalid overrides applied: %+v", cfg.Agent)
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")

	tests := []struct {
		providerType string
		want         string
	}{
		{"openai", "sk-test"},
		{"anthropic", "ak-test"},
		{"ollama", ""},
	}
	for _, tt := range tests {
		cfg := &Settings{Provider: ProviderSettings{Type: tt.providerType}}
		if got := cfg.APIKey(); got != tt.want {
			t.Errorf("APIKey(%s) = %q, want %q", tt.providerType, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"~/data", "/home/tester/data"},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads settings.toml, creating a default one on first run, then
// applies environment overrides.
func Load() (*Settings, error) {
	cfg := DefaultSettings()
	settingsPath := GetSettingsFilePath()

	if !FileExists(settingsPath) {
		if err := CreateDefaultSettings(); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
	} else {
		if _, err := toml.DecodeFile(settingsPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse settings: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes settings back to settings.toml.
func Save(cfg *Settings) error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	f, err := os.OpenFile(settingsPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return nil
}

func DefaultSettings() *Settings {
	return &Settings{
		DataDirectory: "~/.local/share/tabla",
		Provider: ProviderSettings{
			Type: "ollama",
		},
		Agent: AgentSettings{
			MaxSteps:       8,
			TimeoutSeconds: 60,
		},
	}
}

func CreateDefaultSettings() error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		return nil
	}

	content := GenerateSettingsTemplate()
	if err := os.WriteFile(settingsPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

func GenerateSettingsTemplate() string {
	return `# Tabla Configuration
# Location: ~/.config/tabla/settings.toml
# This file uses TOML format: https://toml.io

# Directory where turn history is stored
data_directory = "~/.local/share/tabla"

[provider]
# Reasoning backend: "ollama", "openai" or "anthropic".
# API keys are read from the environment (OPENAI_API_KEY, ANTHROPIC_API_KEY)
# or a .env file in the working directory. They are never stored here.
type = "ollama"

# Override the backend endpoint (optional)
# base_url = "http://localhost:11434"

# Override the model (optional)
# model = "llama3.1:latest"

[agent]
# Maximum reasoning/tool cycles per question
max_steps = 8

# Per-call timeout for the reasoning backend, in seconds
timeout_seconds = 60
`
}

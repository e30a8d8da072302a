// Package config loads settings from settings.toml with TABLA_* environment
// overrides layered on top. API keys are read from the environment only and
// are never written to disk.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type ProviderSettings struct {
	Type    string `toml:"type"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
}

type AgentSettings struct {
	MaxSteps       int `toml:"max_steps"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

type Settings struct {
	DataDirectory string           `toml:"data_directory"`
	Provider      ProviderSettings `toml:"provider"`
	Agent         AgentSettings    `toml:"agent"`
}

var Debug = false
var DebugLog *log.Logger

// DataDir returns the data directory with ~ and env vars expanded.
func (s *Settings) DataDir() string {
	return ExpandPath(s.DataDirectory)
}

// APIKey reads the key for the configured provider type from the environment.
// Ollama needs no key and always returns "".
func (s *Settings) APIKey() string {
	switch s.Provider.Type {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}

func (s *Settings) applyEnvOverrides() {
	if v := os.Getenv("TABLA_DATA_DIR"); v != "" {
		s.DataDirectory = v
	}
	if v := os.Getenv("TABLA_PROVIDER"); v != "" {
		s.Provider.Type = v
	}
	if v := os.Getenv("TABLA_BASE_URL"); v != "" {
		s.Provider.BaseURL = v
	}
	if v := os.Getenv("TABLA_MODEL"); v != "" {
		s.Provider.Model = v
	}
	if v := os.Getenv("TABLA_MAX_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Agent.MaxSteps = n
		}
	}
	if v := os.Getenv("TABLA_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Agent.TimeoutSeconds = n
		}
	}
}

// LoadDotEnv reads a .env file from the working directory if present, so
// API keys can live next to the project instead of the shell profile.
// A missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func CheckDebug() bool {
	debug := os.Getenv("TABLA_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog opens the debug log under dataDir when TABLA_DEBUG is set.
func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Println("=== tabla debug log started ===")
}

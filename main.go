package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tabla/config"
	"tabla/provider"
	"tabla/storage"
	"tabla/ui"
)

const Version = "v0.1.0"

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	dataDir := cfg.DataDir()
	if err := config.EnsureDir(dataDir); err != nil {
		fmt.Printf("Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(dataDir)

	providerType := provider.ParseType(cfg.Provider.Type)

	p, err := provider.NewProvider(provider.Config{
		Type:    providerType,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
		APIKey:  cfg.APIKey(),
	})
	if err != nil {
		fmt.Printf("Failed to initialize provider: %v\n", err)
		if providerType != provider.TypeOllama && cfg.APIKey() == "" {
			fmt.Println("Hint: set the provider API key in the environment or a .env file.")
		}
		os.Exit(1)
	}

	turns, err := storage.NewTurnStorage(dataDir)
	if err != nil {
		fmt.Printf("Failed to initialize turn storage: %v\n", err)
		os.Exit(1)
	}
	defer turns.Close()

	app, err := ui.NewAppView(cfg, p, turns)
	if err != nil {
		fmt.Printf("Failed to initialize UI: %v\n", err)
		os.Exit(1)
	}

	prog := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

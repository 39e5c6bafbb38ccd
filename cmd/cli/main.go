package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/runtime/terminal"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/calc"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/config"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/validate"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/store/session"
)

func main() {
	sessionDir := defaultSessionDir()

	// An optional preparer profile can point somewhere else.
	if path := os.Getenv("TAXAI_PROFILES"); path != "" {
		if registry, err := config.NewRegistry(path); err == nil {
			profile := os.Getenv("TAXAI_PROFILE")
			if profile == "" {
				profile = "default"
			}
			if p, err := registry.GetProfile(context.Background(), profile); err == nil && p.SessionDir != "" {
				sessionDir = p.SessionDir
			}
		}
	}

	cat, err := catalog.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	registry, err := calc.DefaultRegistry(cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := session.NewFileStore(sessionDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Catalog:   cat,
		Registry:  registry,
		Validator: validate.New(cat),
		Store:     store,
		Output:    os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taxai-sessions"
	}
	return filepath.Join(home, ".taxai", "sessions")
}

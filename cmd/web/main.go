package main

import (
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/server"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/calc"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/config"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/validate"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/wizard"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/store/session"
)

var (
	cfgPath     string
	profilePath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the tax wizard API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the server config file (YAML)")
	rootCmd.Flags().StringVarP(&profilePath, "profiles", "p", "",
		"Path to the preparer profiles file (ini)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	v := viper.New()
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if profilePath != "" {
		registry, err := config.NewRegistry(profilePath)
		if err != nil {
			return fmt.Errorf("failed to load preparer profiles: %w", err)
		}
		profiles, _ := registry.GetProfiles(ctx)
		logger.Info().Msgf("Loaded %d preparer profile(s) from `%s`.", len(profiles), profilePath)
		for _, profile := range profiles {
			logger.Info().Msgf("Profile: `%s`", profile)
		}
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to load rule catalog: %w", err)
	}
	registry, err := calc.DefaultRegistry(cat)
	if err != nil {
		return fmt.Errorf("failed to build calculator registry: %w", err)
	}
	controller := wizard.NewController(cat, registry, validate.New(cat), session.NewMemoryStore())

	logger.Info().Msgf("Rule catalog version `%s` loaded.", cat.Version())

	addr := net.JoinHostPort(v.GetString("server.host"), v.GetString("server.port"))
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Dependencies: server.Dependencies{
			Wizard: controller,
		},
	})

	return api.Start()
}

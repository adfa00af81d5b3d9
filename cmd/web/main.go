package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/roi-atlas/pkg/server"
	"github.com/de-tools/roi-atlas/pkg/services/config"
	"github.com/de-tools/roi-atlas/pkg/services/scenario"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the scenario evaluation web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (default is roi-atlas.yaml in the working directory)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := scenario.NewRegistry()

	logger.Info().
		Str("addr", cfg.Addr).
		Int("years", cfg.Years).
		Int("iterations", cfg.Iterations).
		Msg("configuration loaded")

	api := server.NewWebAPI(logger, server.Config{
		Addr: cfg.Addr,
		Dependencies: server.Dependencies{
			Scenarios: registry,
		},
	})

	return api.Start()
}

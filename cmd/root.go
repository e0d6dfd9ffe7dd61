package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sam-annotator/config"
	"sam-annotator/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "sam-annotator",
	Short: "Interactive polygon annotation with a segmentation model",
	Long:  `sam-annotator turns box and click prompts into polygon annotations through a Telegram bot and saves them as JSON files next to the images.`,
}

// Execute запускает корневую команду.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}

// loadConfig читает настройки и поднимает логгер.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

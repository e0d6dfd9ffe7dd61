package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	telegram "sam-annotator/internal/api"
	"sam-annotator/internal/container"
	"sam-annotator/internal/infrastructure/metrics"
	"sam-annotator/internal/infrastructure/storage"
	"sam-annotator/internal/logger"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram annotation bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd)
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Telegram.Token == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Создаём хранилища
	userRepo := storage.NewMemoryUserRepository()

	annotations, err := container.NewAnnotationRepository(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(annotations)

	segmenter, err := container.NewSegmenter(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(segmenter)

	// Метрики
	m := container.NewMetrics(userRepo)
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, metrics.NewHandler(m.Registry())); err != nil {
				logger.Logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// Собираем сервисы приложения
	appContainer := container.New(cfg, userRepo, segmenter, annotations, storage.NewDirImageSource(), m)

	bot, err := telegram.NewBot(cfg.Telegram.Token, appContainer)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Logger.Info("bot is running",
		zap.String("segmenter", cfg.Segmenter.Backend),
		zap.String("storage", cfg.Storage.Backend),
	)
	return bot.Run(ctx)
}

func closeQuietly(v any) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.Logger.Warn("close failed", zap.Error(err))
	}
}

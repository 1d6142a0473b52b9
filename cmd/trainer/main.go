package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/english-trainer/trainer/internal/app"
	"github.com/english-trainer/trainer/internal/config"
	"github.com/english-trainer/trainer/internal/generator"
	"github.com/english-trainer/trainer/internal/models"
	"github.com/english-trainer/trainer/internal/storage"
)

func main() {
	var (
		configPath string
		dataFile   string
		model      string
		backend    string
		debug      bool
	)

	root := &cobra.Command{
		Use:   "trainer",
		Short: "Terminal French-to-English translation trainer",
		Long: `An interactive terminal trainer for French speakers learning English:
model-generated translation exercises, graded feedback, spaced repetition,
lessons, conversation practice and daily challenges. Progress is kept in a
local JSON file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(configPath)
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}
			if model != "" {
				cfg.Model = model
			}
			if backend != "" {
				cfg.Backend = backend
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if debug {
				cfg.Debug = true
			}
			return run(cmd.Context(), cfg)
		},
	}

	root.Flags().StringVar(&configPath, "config", defaultConfigPath(), "path to the YAML config file")
	root.Flags().StringVar(&dataFile, "data-file", "", "override the state file location")
	root.Flags().StringVar(&model, "model", "", "override the completion model")
	root.Flags().StringVar(&backend, "backend", "", "completion backend (openai, anthropic, mock)")
	root.Flags().BoolVar(&debug, "debug", false, "verbose logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := app.NewLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logger.Sync()

	client, err := generator.NewClient(cfg)
	if err != nil {
		return err
	}

	caps := models.HistoryCaps{
		MaxAttempts:      cfg.MaxAttemptsHistory,
		MaxRecentPhrases: cfg.MaxRecentPhrases,
		MaxErrorTracking: cfg.MaxErrorTracking,
	}
	store := storage.New(cfg.DataFile, caps, cfg.Model, logger)
	lock := storage.NewFileLock(cfg.LockFile, cfg.Timeout)
	svc := generator.NewService(client, lock, logger, cfg)

	logger.Info("trainer starting",
		zap.String("backend", cfg.Backend),
		zap.String("model", cfg.Model),
		zap.String("data_file", cfg.DataFile))

	return app.New(cfg, store, svc, logger, os.Stdin, os.Stdout).Run(ctx)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".english_trainer.yaml")
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonotes/internal/notes"
	"gonotes/internal/notes/config"
	"gonotes/pkg/logger"
	"gonotes/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notes service started"
	LogServiceShutdownDone = "notes service shutdown complete"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "notes",
		Short:        "Notes HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, _ []string) error {
			return run(c.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML configuration file")
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// run поднимает сервис и блокируется до сигнала завершения.
func run(ctx context.Context, configPath string) error {
	ctx = logger.NewRequestIDContext(ctx, "")
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("version", version),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	srv, err := notes.NewServer(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrInitServer, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitServer, err)
	}

	srv.Start(ctx)
	shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), srv.ShutdownHooks()...)

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}

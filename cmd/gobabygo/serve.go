package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/gobabygo/internal/config"
	"github.com/dshills/gobabygo/internal/httpapi"
	"github.com/dshills/gobabygo/internal/logger"
	"github.com/dshills/gobabygo/internal/planner"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: $CONFIG_PATH, else environment only)")
	return cmd
}

func runServe(configPath string) error {
	config.LoadDotEnv()
	cfg, err := config.Load(configPath)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	data, err := loadData(cfg.Data.Path)
	if err != nil {
		return exitError(3, "failed to load reference data: %v", err)
	}
	svc := planner.New(data, log)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(svc, log, httpapi.Options{AllowedOrigins: cfg.CORS.AllowedOrigins})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.Env),
			zap.Int("destinations", svc.Directory().Len()),
		)
		errCh <- server.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", zap.Error(err))
			return err
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
			return err
		}
	}
	log.Info("http server stopped")
	return nil
}

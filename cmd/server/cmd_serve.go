package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Skufu/GlucoRisk/internal/httpapi"
	"github.com/Skufu/GlucoRisk/internal/logging"
	"github.com/Skufu/GlucoRisk/internal/predict"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction form and JSON API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)
	logger := logging.New("server")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, pool, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePool(pool)

	// a nil *pgxpool.Pool must not become a non-nil HealthChecker
	var db httpapi.HealthChecker
	if pool != nil {
		db = pool
	}

	svc := predict.NewService(store, logging.New("predict"))
	router := httpapi.SetupRouter(httpapi.NewHandler(svc, store.Keys(), db, logging.New("http")))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr, "models", len(store.Keys()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

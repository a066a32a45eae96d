package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"invoice-audit/internal/common"
	"invoice-audit/internal/llm"
	"invoice-audit/internal/server"
	"invoice-audit/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// AI extractor is optional; without a key the rule pipeline runs alone.
	var ai *llm.Client
	if cfg.LLM.APIKey != "" {
		ai, err = llm.NewClient(llm.Config{
			Model:             cfg.LLM.Model,
			APIKey:            cfg.LLM.APIKey,
			Temperature:       cfg.LLM.Temperature,
			Timeout:           cfg.LLM.Timeout,
			RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		}, logger)
		if err != nil {
			logger.Error("failed to build llm client", "error", err)
			os.Exit(1)
		}
		logger.Info("llm client initialized", "model", cfg.LLM.Model, "primary", cfg.LLM.Primary)
	} else {
		logger.Warn("OPENAI_API_KEY not configured, AI extraction disabled")
	}

	svc := server.NewService(st, ai, cfg, logger)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}

// openStore picks Postgres when DB_URL is set, SQLite otherwise.
func openStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.Store.DSN != "" {
		return store.NewPostgres(ctx, cfg.Store, logger)
	}
	return store.NewSQLite(ctx, cfg.Store.SQLitePath, logger)
}

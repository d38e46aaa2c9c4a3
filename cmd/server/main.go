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

	"newsinsight/config"
	"newsinsight/internal/analyzer"
	"newsinsight/internal/clients"
	"newsinsight/internal/gateway"
	"newsinsight/internal/logging"
	"newsinsight/internal/server"
	"newsinsight/internal/store"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Server] Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	var articles store.ArticleStore
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("[Server] Failed to connect to PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pg.Close()

		if err := pg.EnsureSchema(ctx); err != nil {
			slog.Error("[Server] Failed to ensure schema", slog.String("error", err.Error()))
			os.Exit(1)
		}
		articles = pg
	} else {
		slog.Info("[Server] DATABASE_URL not set, using in-memory article store")
		articles = store.NewMemoryStore()
	}

	var gatewayOpts []gateway.Option
	if !cfg.SimulatedDelays {
		gatewayOpts = append(gatewayOpts, gateway.WithDelays(gateway.Delays{}))
	}
	gw := gateway.New(articles, clients.GetNewsAPIClient(), analyzer.New(), config.Credentials, gatewayOpts...)

	var cache server.TrendingCache
	if cfg.ValkeyAddr != "" {
		vc, err := clients.InitValkey()
		if err != nil {
			slog.Warn("[Server] Valkey unavailable, trending cache disabled",
				slog.String("error", err.Error()))
		} else {
			cache = vc
			defer clients.CloseValkey()
		}
	}

	handler := server.NewHandler(gw, cache, cfg.TrendingCacheTTL)
	e := server.New(handler, cfg.JWTSecret)

	go func() {
		slog.Info("[Server] Listening", slog.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Server] Server stopped unexpectedly", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Server] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

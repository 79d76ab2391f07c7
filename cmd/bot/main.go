package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sportsweartorres-lang/Discord-Moderator/internal/audit"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/bot"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/config"
	"github.com/sportsweartorres-lang/Discord-Moderator/internal/store"

	"github.com/alexliesenfeld/health"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := config.BuildLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	guildStore := store.New(cfg.GuildConfigPath)
	auditLogger := audit.NewLogger(logger)

	botSvc, err := bot.New(cfg, logger, guildStore, auditLogger)
	if err != nil {
		logger.Fatal("bot init failed", zap.Error(err))
	}

	if err := botSvc.Start(); err != nil {
		logger.Fatal("bot start failed", zap.Error(err))
	}
	logger.Info("bot started")

	var server *http.Server
	if cfg.Health.Enabled {
		checker := health.NewChecker(
			health.WithCacheDuration(10*time.Second),
			health.WithTimeout(10*time.Second),
			health.WithCheck(health.Check{
				Name: "guild-config",
				Check: func(ctx context.Context) error {
					_, err := guildStore.Guild("health-probe")
					return err
				},
			}),
			health.WithCheck(health.Check{
				Name: "status-page",
				Check: func(ctx context.Context) error {
					req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Status.URL, nil)
					if err != nil {
						return err
					}
					resp, err := http.DefaultClient.Do(req)
					if err != nil {
						return err
					}
					defer resp.Body.Close()
					if resp.StatusCode >= 500 {
						return fmt.Errorf("status page returned %d", resp.StatusCode)
					}
					return nil
				},
			}),
		)

		router := mux.NewRouter()
		router.Handle("/health", health.NewHandler(checker))
		server = &http.Server{Addr: cfg.Health.Addr, Handler: router}
		go func() {
			logger.Info("health endpoint enabled", zap.String("addr", cfg.Health.Addr))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("health server error", zap.Error(err))
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server != nil {
		_ = server.Shutdown(ctx)
	}
	botSvc.Close(ctx)
}

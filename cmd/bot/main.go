package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"support-relay-backend/internal/bot"
	"support-relay-backend/internal/bot/router"
	"support-relay-backend/internal/common/config"
	"support-relay-backend/internal/common/logger"
	blockredis "support-relay-backend/internal/features/blocklist/repository/redis"
	blocksvc "support-relay-backend/internal/features/blocklist/service"
	"support-relay-backend/internal/features/directory"
	ticketredis "support-relay-backend/internal/features/ticket/repository/redis"
	ticketsvc "support-relay-backend/internal/features/ticket/service"
	apphttp "support-relay-backend/internal/http"
	redisplatform "support-relay-backend/internal/platform/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger.Init("support-relay", cfg.Debug)

	rdb, err := redisplatform.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	ticketRepo := ticketredis.NewRepository(rdb)
	blockRepo := blockredis.NewRepository(rdb)

	tickets := ticketsvc.NewTicketService(ticketRepo)
	blocks := blocksvc.NewBlockService(blockRepo)

	var dir directory.Directory
	if cfg.Directory.BaseURL != "" {
		dir = directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout)
	}

	// Sender needs the API client, the router needs the sender, and the bot
	// needs the router: construct the bot last with a late-bound handler.
	var engine *router.Router
	b, err := bot.New(cfg.Telegram.BotToken, cfg.Telegram.Debug, bot.HandlerFunc(func(ctx context.Context, ev *bot.Event) {
		engine.HandleEvent(ctx, ev)
	}))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}

	sender := bot.NewTelegramSender(b.API())
	engine = router.New(cfg.Telegram.AdminID, tickets, blocks, dir, sender)

	app := apphttp.NewApp(cfg.Server.Origin, cfg.Debug, tickets)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	go b.Run(ctx)

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

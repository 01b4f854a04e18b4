package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/iliyamo/ticketr/internal/config"
	"github.com/iliyamo/ticketr/internal/database"
	"github.com/iliyamo/ticketr/internal/handler"
	"github.com/iliyamo/ticketr/internal/logging"
	"github.com/iliyamo/ticketr/internal/queue"
	"github.com/iliyamo/ticketr/internal/recommend"
	"github.com/iliyamo/ticketr/internal/repository"
	"github.com/iliyamo/ticketr/internal/router"
	"github.com/iliyamo/ticketr/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logging.New(logging.Config{Format: "console"})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if rdb == nil {
		log.Warn().Msg("redis unavailable: rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	users := repository.NewUserRepo(db)
	orgs := repository.NewOrganizationRepo(db)
	events := repository.NewEventRepo(db)
	tickets := repository.NewTicketRepo(db)
	payments := repository.NewPaymentRepo(db)
	ads := repository.NewAdvertisementRepo(db)
	chats := repository.NewChatRepo(db)

	searcher := recommend.NewBreakerSearcher(events, cfg.RecommendBreakerFailures, cfg.RecommendBreakerTimeout)
	recommender := recommend.New(searcher, log)

	var notifier handler.TicketNotifier
	if p := service.NewTicketPublisher(cfg.AMQPURL); p != nil {
		notifier = p
	}
	if cfg.TicketConsumerEnabled && cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartTicketConsumer(ctx, cfg.AMQPURL, "logs", log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("ticket consumer stopped")
			}
		}()
	}

	e := router.New(cfg, router.Handlers{
		Service:  handler.NewServiceHandler(db, log),
		Users:    handler.NewUserHandler(cfg, users, log),
		Orgs:     handler.NewOrganizationHandler(cfg, orgs, log),
		Events:   handler.NewEventHandler(events, log),
		Tickets:  handler.NewTicketHandler(tickets, notifier, log),
		Payments: handler.NewPaymentHandler(payments, log),
		Ads:      handler.NewAdvertisementHandler(ads, log),
		Chats:    handler.NewChatHandler(cfg, chats, recommender, log),
	}, router.Options{
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
	}, log)

	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

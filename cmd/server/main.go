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

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"signup/internal/notification"
	notificationkafka "signup/internal/notification/kafka"
	"signup/internal/notification/outbox"
	"signup/internal/platform/config"
	"signup/internal/platform/database"
	"signup/internal/platform/health"
	"signup/internal/platform/httpserver"
	"signup/internal/platform/kafka/producer"
	"signup/internal/platform/logger"
	"signup/internal/platform/metrics"
	redisclient "signup/internal/platform/redis"
	"signup/internal/registration/adapters"
	"signup/internal/registration/handler"
	registrationmetrics "signup/internal/registration/metrics"
	"signup/internal/registration/service"
	"signup/internal/registration/store/confirmation"
	userstore "signup/internal/registration/store/user"
	httptransport "signup/internal/transport/http"
)

// userStore is what the registration service needs from either user store.
type userStore interface {
	adapters.UserStore
	service.UserConfirmer
}

// codeStore is what the dispatcher and Confirm need from either code store.
type codeStore interface {
	notification.CodeStore
	service.PendingCodeStore
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	checks := health.New()

	users, closeUsers, err := buildUserStore(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeUsers()

	codes, closeCodes, err := buildCodeStore(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeCodes()

	transport, closeTransport, err := buildTransport(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeTransport()

	dispatcher := notification.NewDispatcher(codes, transport, cfg.MailFrom,
		notification.WithLogger(log),
		notification.WithCodeTTL(cfg.ConfirmationCodeTTL),
	)
	registrations := service.New(
		adapters.NewUserStorePersistence(users),
		dispatcher,
		service.WithLogger(service.NewSlogLogger(log)),
		service.WithMetrics(registrationmetrics.New(prometheus.DefaultRegisterer)),
		service.WithConfirmation(codes, users),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:      log,
		Health:      checks,
		Gatherer:    prometheus.DefaultGatherer,
		HTTPMetrics: metrics.NewHTTP(prometheus.DefaultRegisterer),
	}, handler.New(registrations, log))

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting signup server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down signup server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildUserStore(ctx context.Context, cfg config.Server, log *slog.Logger, checks *health.Handler) (userStore, func(), error) {
	pool, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, nil, err
	}
	if pool == nil {
		log.Warn("DATABASE_URL not set, users are kept in memory")
		return userstore.New(), func() {}, nil
	}
	checks.RegisterCheck("postgres", pool.Health)
	return userstore.NewPostgres(pool.DB()), func() { _ = pool.Close() }, nil
}

func buildCodeStore(ctx context.Context, cfg config.Server, log *slog.Logger, checks *health.Handler) (codeStore, func(), error) {
	client, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Warn("REDIS_URL not set, confirmation codes are kept in memory")
		return confirmation.NewInMemory(10 * time.Minute), func() {}, nil
	}
	checks.RegisterCheck("redis", client.Health)
	return confirmation.NewRedis(client.Client), func() { _ = client.Close() }, nil
}

func buildTransport(ctx context.Context, cfg config.Server, log *slog.Logger, checks *health.Handler) (notification.Transport, func(), error) {
	if cfg.KafkaBrokers == "" {
		log.Warn("KAFKA_BROKERS not set, confirmation emails go to the in-memory outbox")
		return outbox.New(), func() {}, nil
	}
	prod, err := producer.New(producer.DefaultConfig(cfg.KafkaBrokers), log)
	if err != nil {
		return nil, nil, err
	}
	if err := prod.EnsureTopic(ctx, cfg.ConfirmationTopic, 1, 1); err != nil {
		_ = prod.Close()
		return nil, nil, err
	}
	checks.RegisterCheck("kafka", func(ctx context.Context) error {
		if !prod.Healthy(ctx) {
			return errors.New("brokers unreachable")
		}
		return nil
	})
	return notificationkafka.NewTransport(prod, cfg.ConfirmationTopic), func() { _ = prod.Close() }, nil
}

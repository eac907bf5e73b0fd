package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/memberd/memberd/internal/application/membership"
	"github.com/memberd/memberd/internal/application/ports"
	"github.com/memberd/memberd/internal/config"
	"github.com/memberd/memberd/internal/infrastructure/audit"
	"github.com/memberd/memberd/internal/infrastructure/auth"
	memberdhttp "github.com/memberd/memberd/internal/infrastructure/http"
	"github.com/memberd/memberd/internal/infrastructure/http/handlers"
	"github.com/memberd/memberd/internal/infrastructure/http/middleware"
	"github.com/memberd/memberd/internal/infrastructure/notification"
	"github.com/memberd/memberd/internal/infrastructure/persistence/db"
	"github.com/memberd/memberd/internal/infrastructure/persistence/postgres"
	"github.com/memberd/memberd/internal/infrastructure/queue"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("memberd exited")
	}
}

func run(log zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	queries := db.New(pool)

	orgs := postgres.NewOrganizationRepository(queries)
	projects := postgres.NewProjectRepository(queries)
	users := postgres.NewUserRepository(queries)
	memberships := postgres.NewMembershipRepository(queries)
	invitations := postgres.NewInvitationRepository(queries)
	auditStore := postgres.NewAuditLogRepository(queries)
	recorder := audit.NewRecorder(auditStore, log)

	// Redis is optional. With it, invitation emails go through asynq and a
	// worker processes them; without it, they are logged.
	var (
		notifier    ports.NotificationGateway
		redisClient *redis.Client
		worker      *queue.Worker
	)
	if cfg.Redis.URL != "" {
		redisOpt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		redisClient = redis.NewClient(redisOpt)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		defer redisClient.Close()

		asynqOpt := asynq.RedisClientOpt{
			Addr:     redisOpt.Addr,
			Password: redisOpt.Password,
			DB:       redisOpt.DB,
		}
		enqueuer, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			return fmt.Errorf("create enqueuer: %w", err)
		}
		defer enqueuer.Close()
		notifier = notification.NewQueueGateway(enqueuer, cfg.Environment)

		worker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Error().Err(err).Msg("queue worker stopped")
			}
		}()
	} else {
		notifier = notification.NewLogGateway(log, cfg.Environment)
	}

	createUC := membership.NewCreateMembership(orgs, projects, users, memberships, invitations, recorder, notifier)
	listUC := membership.NewListMemberships(memberships)
	upsertUC := membership.NewUpsertMembership(users, memberships)
	removeUC := membership.NewRemoveMembership(memberships)
	invitationsUC := membership.NewListInvitations(invitations)

	membershipsHandler := handlers.NewMembershipsHandler(createUC, listUC, upsertUC, removeUC, invitationsUC, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	var authValidator *middleware.AuthValidator
	if cfg.JWT.PublicKeyPath != "" {
		pemBytes, err := os.ReadFile(cfg.JWT.PublicKeyPath)
		if err != nil {
			return fmt.Errorf("read jwt public key: %w", err)
		}
		publicKey, err := auth.LoadRSAPublicKeyFromPEM(pemBytes)
		if err != nil {
			return fmt.Errorf("parse jwt public key: %w", err)
		}
		validator := auth.NewTokenValidator(publicKey, cfg.JWT.Issuer, cfg.JWT.Audience)
		authValidator = middleware.NewAuthValidator(validator)
	} else if !cfg.IsDevelopment() {
		return errors.New("jwt.public_key_path is required outside development")
	} else {
		log.Warn().Msg("no jwt public key configured; requests are unauthenticated")
	}

	router := memberdhttp.NewRouter(memberdhttp.RouterConfig{
		Logger:        log,
		Memberships:   membershipsHandler,
		Health:        healthHandler,
		Auth:          authValidator,
		RateLimiter:   middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute),
		CORSOrigins:   cfg.CORS.AllowedOrigins,
		IsDevelopment: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("environment", cfg.Environment).Msg("memberd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	return nil
}

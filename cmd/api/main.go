// Command api runs the photo intake HTTP service.
//
// @title                       Photo Intake API
// @version                     1.0
// @description                 School photo intake with moderation and Drive mirroring.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolshots/photo-intake/internal/api"
	"github.com/schoolshots/photo-intake/internal/api/handler"
	"github.com/schoolshots/photo-intake/internal/core/ports"
	"github.com/schoolshots/photo-intake/internal/core/service"
	"github.com/schoolshots/photo-intake/internal/infrastructure/db/mongo"
	"github.com/schoolshots/photo-intake/internal/infrastructure/db/postgres"
	"github.com/schoolshots/photo-intake/internal/infrastructure/db/redis"
	"github.com/schoolshots/photo-intake/internal/infrastructure/drive"
	"github.com/schoolshots/photo-intake/internal/infrastructure/http/handlers"
	"github.com/schoolshots/photo-intake/internal/infrastructure/queue"
	"github.com/schoolshots/photo-intake/internal/infrastructure/storage/supabase"
	"github.com/schoolshots/photo-intake/internal/pkg/config"
	"github.com/schoolshots/photo-intake/internal/pkg/token"
	"github.com/schoolshots/photo-intake/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "photo-intake",
	})

	if err := run(ctx, stop, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("photo-intake stopped")
	}
}

func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config, log zerolog.Logger) error {
	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "photo-intake"})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(context.WithoutCancel(ctx), mdb); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	eventRepo := mongo.NewEventRepository(mdb)
	if err := eventRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, approval locking degraded")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventRepo, logger.Component("events"))
	// Workers outlive the signal; Close drains them after the server stops.
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Close()

	var mirror ports.Mirror
	if cfg.Drive.Enabled() {
		m, err := drive.New(ctx, drive.Config{
			ServiceAccountEmail: cfg.Drive.ServiceAccountEmail,
			PrivateKey:          cfg.Drive.Key(),
			RootFolderID:        cfg.Drive.RootFolderID,
		}, logger.Component("drive"))
		if err != nil {
			return err
		}
		mirror = m
	} else {
		log.Warn().Msg("drive credentials missing, approved photos will not be mirrored")
	}

	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	photoRepo := postgres.NewPhotoRepository(pool)

	authService := service.NewAuthService(userRepo, token.NewCodec(cfg.JWTSecret, cfg.TokenTTL), logger.Component("auth"))
	if err := authService.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		return err
	}

	photoService := service.NewPhotoService(service.PhotoDeps{
		Photos: photoRepo,
		Teams:  teamRepo,
		Store: supabase.NewClient(supabase.Config{
			URL:        cfg.Storage.URL,
			ServiceKey: cfg.Storage.ServiceKey,
			Bucket:     cfg.Storage.Bucket,
		}),
		Mirror:    mirror,
		Lock:      redis.NewApprovalLock(rdb, cfg.Approval.LockTTL),
		Publisher: dispatcher,
		Events:    eventRepo,
	}, cfg.Approval.MirrorTimeout, logger.Component("photos"))

	router := api.NewRouter(api.RouterDeps{
		Log:      log,
		Verifier: authService,
		Auth:     handler.NewAuthHandler(authService),
		Photos:   handler.NewPhotoHandler(photoService, cfg.MaxUploadBytes),
		Teams:    handler.NewTeamHandler(service.NewTeamService(teamRepo, logger.Component("teams"))),
		Users:    handler.NewUserHandler(service.NewUserService(userRepo, teamRepo, logger.Component("users"))),
		Stats:    handler.NewStatsHandler(service.NewStatsService(photoRepo, teamRepo, userRepo)),
		Health:   handlers.NewHealthHandler(),
		Readiness: handlers.NewReadinessHandler(
			handlers.PostgresDependency(pool),
			handlers.MongoDependency(mdb),
			handlers.RedisDependency(rdb),
		),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	return nil
}

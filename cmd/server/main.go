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

	"github.com/anonto42/campus-social/backend/internal/notify"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/router"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/anonto42/campus-social/backend/internal/storage"
	"github.com/anonto42/campus-social/backend/pkg/config"
	"github.com/anonto42/campus-social/backend/pkg/firebase"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// no logger yet
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("server exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run serves until ctx is cancelled or the server fails. Every resource it
// opens is closed before it returns.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := config.InitDB(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing databases: %w", err)
	}
	defer db.CloseDB()

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	deps, err := buildDeps(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	e := router.New(db.Postgres, services.New(deps), logger, router.Options{
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.IsProduction(),
	})

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		serveErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildDeps wires the service collaborators. Firebase sign-in, push and
// image uploads are only enabled when Firebase is configured.
func buildDeps(ctx context.Context, cfg *config.Config, db *config.DB, logger *zap.Logger) (services.Deps, error) {
	tokens, err := services.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return services.Deps{}, fmt.Errorf("creating token issuer: %w", err)
	}
	deps := services.Deps{
		Repos:  repositories.New(db.Postgres),
		Tokens: tokens,
		Logger: logger,
	}

	if cfg.FirebaseCredentialsPath == "" {
		logger.Warn("FIREBASE_CREDENTIALS_PATH not set, Firebase sign-in, push and image uploads disabled")
		return deps, nil
	}
	fb, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
	if err != nil {
		return services.Deps{}, fmt.Errorf("initializing Firebase: %w", err)
	}
	deps.Firebase = fb.AuthClient
	deps.Pusher = notify.NewFCMPusher(fb.MessagingClient)
	if fb.Bucket != nil {
		var catalog repositories.MediaRepository
		if db.Mongo != nil {
			catalog = repositories.NewMongoMediaRepository(db.Mongo.Database(cfg.MongoDatabase))
		}
		deps.Images = storage.NewFirebaseImageStore(fb.Bucket, fb.BucketName, catalog, logger)
	} else {
		logger.Warn("FIREBASE_STORAGE_BUCKET not set, image uploads disabled")
	}
	logger.Info("Firebase initialized")
	return deps, nil
}

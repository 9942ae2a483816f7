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

	"go.uber.org/zap"

	"github.com/KDGehlot2003/codeblog.io/internal/auth"
	"github.com/KDGehlot2003/codeblog.io/internal/config"
	delivery "github.com/KDGehlot2003/codeblog.io/internal/delivery/http"
	"github.com/KDGehlot2003/codeblog.io/internal/logger"
	"github.com/KDGehlot2003/codeblog.io/internal/middleware"
	"github.com/KDGehlot2003/codeblog.io/internal/repository"
	"github.com/KDGehlot2003/codeblog.io/internal/usecase"
	"github.com/KDGehlot2003/codeblog.io/pkg/imagestore"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "codeblog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Server.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := repository.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repos.Close()

	tokens, err := auth.NewTokenIssuer(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	if err != nil {
		return err
	}

	var uploader usecase.ImageUploader
	if cfg.S3.Enabled() {
		s3Uploader, err := imagestore.NewS3Uploader(ctx, imagestore.Config{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("init image store: %w", err)
		}
		uploader = s3Uploader
		log.Info("image uploads enabled", zap.String("bucket", cfg.S3.Bucket))
	} else {
		log.Warn("s3 bucket not configured, uploaded images are discarded")
	}

	validate := usecase.NewValidator()
	authUsecase := usecase.NewAuthUsecase(repos.Users, repos.Blogs, auth.NewPasswordHasher(), tokens, uploader, validate)
	blogUsecase := usecase.NewBlogUsecase(repos.Blogs, uploader, validate)
	engagementUsecase := usecase.NewEngagementUsecase(repos.Blogs, repos.Comments, repos.Upvotes, repos.SavedBlogs, validate)

	handler := delivery.NewHandler(authUsecase, blogUsecase, engagementUsecase, delivery.Options{
		Cookie:     cfg.Cookie,
		Upload:     cfg.Upload,
		AccessTTL:  tokens.AccessTTL(),
		RefreshTTL: tokens.RefreshTTL(),
		Ping:       repos.Ping,
	}, log)
	authMiddleware := middleware.NewAuthMiddleware(authUsecase, log)
	router := delivery.NewRouter(handler, authMiddleware, cfg.CORS.AllowedOrigins, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

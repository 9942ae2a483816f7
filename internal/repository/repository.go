// Package repository selects the storage backend for the configured driver.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/KDGehlot2003/codeblog.io/internal/config"
	"github.com/KDGehlot2003/codeblog.io/internal/domain"
	"github.com/KDGehlot2003/codeblog.io/internal/repository/memory"
	"github.com/KDGehlot2003/codeblog.io/internal/repository/postgres"
)

type Set struct {
	Users      domain.UserRepository
	Blogs      domain.BlogRepository
	Comments   domain.CommentRepository
	Upvotes    domain.UpvoteRepository
	SavedBlogs domain.SavedBlogRepository

	// Ping is nil for backends without a connection to check.
	Ping  func(ctx context.Context) error
	Close func()
}

func NewMemory() *Set {
	store := memory.NewStore()
	return &Set{
		Users:      store.Users(),
		Blogs:      store.Blogs(),
		Comments:   store.Comments(),
		Upvotes:    store.Upvotes(),
		SavedBlogs: store.SavedBlogs(),
		Close:      func() {},
	}
}

func NewPostgres(pool *pgxpool.Pool) *Set {
	return &Set{
		Users:      postgres.NewUserRepository(pool),
		Blogs:      postgres.NewBlogRepository(pool),
		Comments:   postgres.NewCommentRepository(pool),
		Upvotes:    postgres.NewUpvoteRepository(pool),
		SavedBlogs: postgres.NewSavedBlogRepository(pool),
		Ping:       pool.Ping,
		Close:      pool.Close,
	}
}

// Open connects the configured backend. For postgres it also applies
// pending migrations.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*Set, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return NewMemory(), nil
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.MigrateUp(cfg.URL); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("database migrations applied")
		return NewPostgres(pool), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

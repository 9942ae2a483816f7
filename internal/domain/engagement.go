package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"_id"`
	BlogID    uuid.UUID `json:"blog"`
	OwnerID   uuid.UUID `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentPage struct {
	Comments   []*Comment `json:"comments"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int        `json:"totalComments"`
	TotalPages int        `json:"totalPages"`
}

type SavedBlogPage struct {
	Blogs      []*Blog `json:"blogs"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int     `json:"totalBlogs"`
	TotalPages int     `json:"totalPages"`
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	ListByBlog(ctx context.Context, blogID uuid.UUID, limit, offset int) ([]*Comment, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpvoteRepository.Toggle adds the vote if absent and removes it otherwise.
type UpvoteRepository interface {
	Toggle(ctx context.Context, blogID, ownerID uuid.UUID) (bool, error)
	CountByBlog(ctx context.Context, blogID uuid.UUID) (int, error)
}

type SavedBlogRepository interface {
	Toggle(ctx context.Context, ownerID, blogID uuid.UUID) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Blog, int, error)
}

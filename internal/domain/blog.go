package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID           uuid.UUID `json:"_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	ThumbnailURL string    `json:"thumbnail,omitempty"`
	OwnerID      uuid.UUID `json:"owner"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BlogFilter narrows a listing. Nil fields are not applied.
type BlogFilter struct {
	Category    *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

func (d SortDirection) String() string {
	if d == SortDescending {
		return "desc"
	}
	return "asc"
}

// BlogQuery is the storage-independent form of a listing request.
type BlogQuery struct {
	Filter        BlogFilter
	SortField     string
	SortDirection SortDirection
	Skip          int
	Limit         int
	Page          int
}

type BlogPage struct {
	Blogs      []*Blog `json:"blogs"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int     `json:"totalBlogs"`
	TotalPages int     `json:"totalPages"`
}

type BlogRepository interface {
	Create(ctx context.Context, blog *Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*Blog, error)
	List(ctx context.Context, q *BlogQuery) ([]*Blog, int, error)
	Update(ctx context.Context, blog *Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

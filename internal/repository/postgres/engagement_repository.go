package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, blog_id, owner_id, content, created_at, updated_at`

func scanComment(row pgx.Row) (*domain.Comment, error) {
	c := &domain.Comment{}
	err := row.Scan(&c.ID, &c.BlogID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO comments (id, blog_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, comment.ID, comment.BlogID, comment.OwnerID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanComment(r.db.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
}

func (r *CommentRepository) ListByBlog(ctx context.Context, blogID uuid.UUID, limit, offset int) ([]*domain.Comment, int, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE blog_id = $1`, blogID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE blog_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, blogID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

type UpvoteRepository struct {
	db *pgxpool.Pool
}

func NewUpvoteRepository(db *pgxpool.Pool) *UpvoteRepository {
	return &UpvoteRepository{db: db}
}

// Toggle removes an existing vote or inserts a new one. The delete runs
// first so each call is a single statement on the common path.
func (r *UpvoteRepository) Toggle(ctx context.Context, blogID, ownerID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM upvotes WHERE blog_id = $1 AND owner_id = $2`, blogID, ownerID)
	if err != nil {
		return false, fmt.Errorf("remove upvote: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO upvotes (blog_id, owner_id) VALUES ($1, $2)
		ON CONFLICT (blog_id, owner_id) DO NOTHING
	`, blogID, ownerID)
	if err != nil {
		return false, fmt.Errorf("add upvote: %w", err)
	}
	return true, nil
}

func (r *UpvoteRepository) CountByBlog(ctx context.Context, blogID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM upvotes WHERE blog_id = $1`, blogID).Scan(&n)
	return n, err
}

type SavedBlogRepository struct {
	db *pgxpool.Pool
}

func NewSavedBlogRepository(db *pgxpool.Pool) *SavedBlogRepository {
	return &SavedBlogRepository{db: db}
}

func (r *SavedBlogRepository) Toggle(ctx context.Context, ownerID, blogID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM saved_blogs WHERE owner_id = $1 AND blog_id = $2`, ownerID, blogID)
	if err != nil {
		return false, fmt.Errorf("unsave blog: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO saved_blogs (owner_id, blog_id) VALUES ($1, $2)
		ON CONFLICT (owner_id, blog_id) DO NOTHING
	`, ownerID, blogID)
	if err != nil {
		return false, fmt.Errorf("save blog: %w", err)
	}
	return true, nil
}

func (r *SavedBlogRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Blog, int, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_blogs WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count saved blogs: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.title, b.content, b.category, b.thumbnail_url, b.owner_id, b.created_at, b.updated_at
		FROM saved_blogs s
		JOIN blogs b ON b.id = s.blog_id
		WHERE s.owner_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list saved blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*domain.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}
	return blogs, total, rows.Err()
}

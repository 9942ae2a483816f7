package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

type BlogRepository struct {
	db *pgxpool.Pool
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, title, content, category, thumbnail_url, owner_id, created_at, updated_at`

// blogSortColumns maps sortBy values onto columns. Unknown values keep
// insertion order.
var blogSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"category":  "category",
	"content":   "content",
}

func scanBlog(row pgx.Row) (*domain.Blog, error) {
	blog := &domain.Blog{}
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.Category,
		&blog.ThumbnailURL,
		&blog.OwnerID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		INSERT INTO blogs (id, title, content, category, thumbnail_url, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	now := time.Now().UTC()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.Category,
		blog.ThumbnailURL,
		blog.OwnerID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`
	return scanBlog(r.db.QueryRow(ctx, query, id))
}

// blogListQuery is the SQL for one listing request.
type blogListQuery struct {
	count string
	list  string
	args  []any
}

// buildBlogListQuery assembles filter, ordering and paging. Only whitelisted
// column names are ever interpolated; every value travels as an argument.
func buildBlogListQuery(q *domain.BlogQuery) blogListQuery {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Filter.Category != nil {
		where = append(where, "category = "+arg(*q.Filter.Category))
	}
	if q.Filter.CreatedFrom != nil {
		where = append(where, "created_at >= "+arg(*q.Filter.CreatedFrom))
	}
	if q.Filter.CreatedTo != nil {
		where = append(where, "created_at <= "+arg(*q.Filter.CreatedTo))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	order := "seq ASC"
	if column, ok := blogSortColumns[q.SortField]; ok {
		dir := "ASC"
		if q.SortDirection == domain.SortDescending {
			dir = "DESC"
		}
		order = column + " " + dir + ", seq ASC"
	}

	limit := arg(q.Limit)
	offset := arg(q.Skip)

	return blogListQuery{
		count: "SELECT COUNT(*) FROM blogs" + clause,
		list: "SELECT " + blogColumns + " FROM blogs" + clause +
			" ORDER BY " + order + " LIMIT " + limit + " OFFSET " + offset,
		args: args,
	}
}

// countArgs drops the trailing LIMIT and OFFSET values.
func (b blogListQuery) countArgs() []any {
	return b.args[:len(b.args)-2]
}

func (r *BlogRepository) List(ctx context.Context, q *domain.BlogQuery) ([]*domain.Blog, int, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	built := buildBlogListQuery(q)

	var total int
	if err := r.db.QueryRow(ctx, built.count, built.countArgs()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	rows, err := r.db.Query(ctx, built.list, built.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// Update writes the mutable fields. The owner column is never touched.
func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		UPDATE blogs SET title = $2, content = $3, category = $4, thumbnail_url = $5, updated_at = $6
		WHERE id = $1
	`

	blog.UpdatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx, query, blog.ID, blog.Title, blog.Content, blog.Category, blog.ThumbnailURL, blog.UpdatedAt)
	return err
}

func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	return err
}

func (r *BlogRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

type BlogRepository struct {
	s *Store
}

// blogCompare holds the sortable fields. Anything else keeps insertion order.
var blogCompare = map[string]func(a, b *domain.Blog) int{
	"createdAt": func(a, b *domain.Blog) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt": func(a, b *domain.Blog) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
	"title":     func(a, b *domain.Blog) int { return strings.Compare(a.Title, b.Title) },
	"category":  func(a, b *domain.Blog) int { return strings.Compare(a.Category, b.Category) },
	"content":   func(a, b *domain.Blog) int { return strings.Compare(a.Content, b.Content) },
}

func (r *BlogRepository) Create(_ context.Context, blog *domain.Blog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	now := r.s.now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	r.s.blogs[blog.ID] = &blogRecord{blog: copyBlog(blog), seq: r.s.next()}
	return nil
}

func (r *BlogRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if rec, ok := r.s.blogs[id]; ok {
		return copyBlog(rec.blog), nil
	}
	return nil, nil
}

func (r *BlogRepository) List(_ context.Context, q *domain.BlogQuery) ([]*domain.Blog, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*blogRecord, 0, len(r.s.blogs))
	for _, rec := range r.s.blogs {
		if matches(rec.blog, q.Filter) {
			matched = append(matched, rec)
		}
	}

	cmp, known := blogCompare[q.SortField]
	desc := known && q.SortDirection == domain.SortDescending
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if known {
			if c := cmp(a.blog, b.blog); c != 0 {
				if desc {
					return c > 0
				}
				return c < 0
			}
		}
		return a.seq < b.seq
	})

	total := len(matched)
	if q.Skip >= total {
		return []*domain.Blog{}, total, nil
	}
	end := q.Skip + q.Limit
	if end > total {
		end = total
	}

	blogs := make([]*domain.Blog, 0, end-q.Skip)
	for _, rec := range matched[q.Skip:end] {
		blogs = append(blogs, copyBlog(rec.blog))
	}
	return blogs, total, nil
}

func (r *BlogRepository) Update(_ context.Context, blog *domain.Blog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.blogs[blog.ID]
	if !ok {
		return nil
	}

	blog.UpdatedAt = r.s.now()
	blog.OwnerID = rec.blog.OwnerID
	blog.CreatedAt = rec.blog.CreatedAt
	rec.blog = copyBlog(blog)
	return nil
}

func (r *BlogRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.blogs, id)

	for cid, c := range r.s.comments {
		if c.comment.BlogID == id {
			delete(r.s.comments, cid)
		}
	}
	for p := range r.s.upvotes {
		if p.a == id {
			delete(r.s.upvotes, p)
		}
	}
	for owner, records := range r.s.saved {
		kept := records[:0]
		for _, rec := range records {
			if rec.blogID != id {
				kept = append(kept, rec)
			}
		}
		r.s.saved[owner] = kept
	}
	return nil
}

func (r *BlogRepository) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, rec := range r.s.blogs {
		if rec.blog.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func matches(b *domain.Blog, f domain.BlogFilter) bool {
	if f.Category != nil && b.Category != *f.Category {
		return false
	}
	if f.CreatedFrom != nil && b.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && b.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

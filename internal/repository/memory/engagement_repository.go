package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := r.s.now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	r.s.comments[comment.ID] = &blogComment{comment: copyComment(comment), seq: r.s.next()}
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c, ok := r.s.comments[id]; ok {
		return copyComment(c.comment), nil
	}
	return nil, nil
}

func (r *CommentRepository) ListByBlog(_ context.Context, blogID uuid.UUID, limit, offset int) ([]*domain.Comment, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*blogComment
	for _, c := range r.s.comments {
		if c.comment.BlogID == blogID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	comments := []*domain.Comment{}
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		comments = append(comments, copyComment(matched[i].comment))
	}
	return comments, len(matched), nil
}

func (r *CommentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.comments, id)
	return nil
}

type UpvoteRepository struct {
	s *Store
}

func (r *UpvoteRepository) Toggle(_ context.Context, blogID, ownerID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pair{a: blogID, b: ownerID}
	if _, ok := r.s.upvotes[key]; ok {
		delete(r.s.upvotes, key)
		return false, nil
	}
	r.s.upvotes[key] = r.s.now()
	return true, nil
}

func (r *UpvoteRepository) CountByBlog(_ context.Context, blogID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for key := range r.s.upvotes {
		if key.a == blogID {
			n++
		}
	}
	return n, nil
}

type SavedBlogRepository struct {
	s *Store
}

func (r *SavedBlogRepository) Toggle(_ context.Context, ownerID, blogID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records := r.s.saved[ownerID]
	for i, rec := range records {
		if rec.blogID == blogID {
			r.s.saved[ownerID] = append(records[:i:i], records[i+1:]...)
			return false, nil
		}
	}
	r.s.saved[ownerID] = append(records, savedRecord{blogID: blogID, savedAt: r.s.now(), seq: r.s.next()})
	return true, nil
}

// ListByOwner returns saved blogs newest first.
func (r *SavedBlogRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Blog, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := r.s.saved[ownerID]
	blogs := []*domain.Blog{}
	for i := len(records) - 1 - offset; i >= 0 && len(blogs) < limit; i-- {
		if rec, ok := r.s.blogs[records[i].blogID]; ok {
			blogs = append(blogs, copyBlog(rec.blog))
		}
	}
	return blogs, len(records), nil
}

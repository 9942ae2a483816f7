// Package memory keeps every repository in process memory. It backs the
// "memory" database driver and the test suites.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

type pair struct {
	a, b uuid.UUID
}

type blogRecord struct {
	blog *domain.Blog
	seq  int64
}

type savedRecord struct {
	blogID  uuid.UUID
	savedAt time.Time
	seq     int64
}

// Store holds the shared state behind all memory repositories so that
// deleting a blog can drop its comments, upvotes and saves.
type Store struct {
	mu       sync.RWMutex
	seq      int64
	users    map[uuid.UUID]*domain.User
	blogs    map[uuid.UUID]*blogRecord
	comments map[uuid.UUID]*blogComment
	upvotes  map[pair]time.Time
	saved    map[uuid.UUID][]savedRecord
	now      func() time.Time
}

type blogComment struct {
	comment *domain.Comment
	seq     int64
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*domain.User),
		blogs:    make(map[uuid.UUID]*blogRecord),
		comments: make(map[uuid.UUID]*blogComment),
		upvotes:  make(map[pair]time.Time),
		saved:    make(map[uuid.UUID][]savedRecord),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *UserRepository           { return &UserRepository{s: s} }
func (s *Store) Blogs() *BlogRepository           { return &BlogRepository{s: s} }
func (s *Store) Comments() *CommentRepository     { return &CommentRepository{s: s} }
func (s *Store) Upvotes() *UpvoteRepository       { return &UpvoteRepository{s: s} }
func (s *Store) SavedBlogs() *SavedBlogRepository { return &SavedBlogRepository{s: s} }

// next must be called with mu held for writing.
func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func copyUser(u *domain.User) *domain.User {
	clone := *u
	if u.CurrentRefreshToken != nil {
		token := *u.CurrentRefreshToken
		clone.CurrentRefreshToken = &token
	}
	return &clone
}

func copyBlog(b *domain.Blog) *domain.Blog {
	clone := *b
	return &clone
}

func copyComment(c *domain.Comment) *domain.Comment {
	clone := *c
	return &clone
}

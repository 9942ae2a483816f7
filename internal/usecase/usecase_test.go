package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/KDGehlot2003/codeblog.io/internal/auth"
	"github.com/KDGehlot2003/codeblog.io/internal/domain"
	"github.com/KDGehlot2003/codeblog.io/internal/repository/memory"
)

type stubUploader struct {
	url   string
	err   error
	calls []string
}

func (s *stubUploader) Upload(_ context.Context, localPath string) (string, error) {
	s.calls = append(s.calls, localPath)
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

var errUploadDown = errors.New("bucket unavailable")

type fixture struct {
	store      *memory.Store
	tokens     *auth.TokenIssuer
	uploader   *stubUploader
	auth       *AuthUsecase
	blogs      *BlogUsecase
	engagement *EngagementUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tokens, err := auth.NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	v := NewValidator()
	uploader := &stubUploader{url: "https://cdn.example.com/img.png"}
	return &fixture{
		store:      store,
		tokens:     tokens,
		uploader:   uploader,
		auth:       NewAuthUsecase(store.Users(), store.Blogs(), auth.NewPasswordHasher(), tokens, uploader, v),
		blogs:      NewBlogUsecase(store.Blogs(), uploader, v),
		engagement: NewEngagementUsecase(store.Blogs(), store.Comments(), store.Upvotes(), store.SavedBlogs(), v),
	}
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), RegisterInput{
		FullName: "User " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) blog(t *testing.T, owner uuid.UUID, title, category string) *domain.Blog {
	t.Helper()
	b, err := f.blogs.Create(context.Background(), owner, CreateBlogInput{
		Title:    title,
		Content:  "Body of " + title,
		Category: category,
	})
	require.NoError(t, err)
	return b
}

// tempFile stands in for an upload the delivery layer saved to disk.
func tempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG"), 0o600))
	return path
}

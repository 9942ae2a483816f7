package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

func ptr(s string) *string { return &s }

func TestCreateBlog(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	path := tempFile(t)

	blog, err := f.blogs.Create(context.Background(), owner.ID, CreateBlogInput{
		Title:         "  Graphs  ",
		Content:       "BFS and DFS",
		Category:      "DSA",
		ThumbnailPath: path,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, blog.ID)
	assert.Equal(t, "Graphs", blog.Title)
	assert.Equal(t, owner.ID, blog.OwnerID)
	assert.Equal(t, f.uploader.url, blog.ThumbnailURL)
	assert.False(t, blog.CreatedAt.IsZero())
	assert.NoFileExists(t, path)
}

func TestCreateBlog_Validation(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")

	tests := []struct {
		in  CreateBlogInput
		msg string
	}{
		{CreateBlogInput{Content: "x", Category: "DSA"}, "Title, content and category are required"},
		{CreateBlogInput{Title: "Valid", Content: " ", Category: "DSA"}, "Title, content and category are required"},
		{CreateBlogInput{Title: "ab", Content: "x", Category: "DSA"}, "Title should be between 3 and 30 characters long"},
		{CreateBlogInput{Title: "0123456789012345678901234567890", Content: "x", Category: "DSA"}, "Title should be between 3 and 30 characters long"},
		{CreateBlogInput{Title: "Valid", Content: "x", Category: "D"}, "Category should be between 2 and 30 characters long"},
	}
	for _, tt := range tests {
		blog, err := f.blogs.Create(context.Background(), owner.ID, tt.in)

		assert.Nil(t, blog)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, tt.msg, domain.PublicMessage(err))
	}
}

func TestCreateBlog_UploadFailure(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	f.uploader.err = errUploadDown
	path := tempFile(t)

	_, err := f.blogs.Create(context.Background(), owner.ID, CreateBlogInput{
		Title: "Graphs", Content: "BFS", Category: "DSA", ThumbnailPath: path,
	})

	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Equal(t, "Failed to upload thumbnail", domain.PublicMessage(err))
	assert.NoFileExists(t, path)

	blogs, total, err := f.store.Blogs().List(context.Background(), &domain.BlogQuery{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, blogs)
	assert.Zero(t, total)
}

func TestCreateBlog_WithoutUploaderIgnoresThumbnail(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	uc := NewBlogUsecase(f.store.Blogs(), nil, f.blogs.v)
	path := tempFile(t)

	blog, err := uc.Create(context.Background(), owner.ID, CreateBlogInput{
		Title: "Graphs", Content: "BFS", Category: "DSA", ThumbnailPath: path,
	})
	require.NoError(t, err)
	assert.Empty(t, blog.ThumbnailURL)
	assert.NoFileExists(t, path)
}

func TestListBlogs(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	for i := 1; i <= 12; i++ {
		f.blog(t, owner.ID, fmt.Sprintf("Blog %02d", i), "DSA")
	}
	ctx := context.Background()

	page, err := f.blogs.List(ctx, &domain.BlogQuery{SortField: "createdAt", Page: 2, Limit: 5, Skip: 5})
	require.NoError(t, err)
	assert.Len(t, page.Blogs, 5)
	assert.Equal(t, "Blog 06", page.Blogs[0].Title)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	page, err = f.blogs.List(ctx, &domain.BlogQuery{SortField: "createdAt", Page: 4, Limit: 5, Skip: 15})
	assert.ErrorIs(t, err, domain.ErrNoBlogsFound)
	require.NotNil(t, page)
	assert.NotNil(t, page.Blogs)
	assert.Empty(t, page.Blogs)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	category := "Web"
	page, err = f.blogs.List(ctx, &domain.BlogQuery{Filter: domain.BlogFilter{Category: &category}, Page: 1, Limit: 10})
	assert.ErrorIs(t, err, domain.ErrNoBlogsFound)
	assert.Equal(t, 0, page.TotalPages)
}

func TestGetBlogByID(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	created := f.blog(t, owner.ID, "Graphs", "DSA")
	ctx := context.Background()

	got, err := f.blogs.GetByID(ctx, " "+created.ID.String()+" ")
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	_, err = f.blogs.GetByID(ctx, "12345")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = f.blogs.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrBlogNotFound)
}

func TestUpdateBlog(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	created := f.blog(t, owner.ID, "Graphs", "DSA")
	ctx := context.Background()

	updated, err := f.blogs.Update(ctx, created.ID.String(), owner.ID, UpdateBlogInput{Content: ptr("Updated Content")})
	require.NoError(t, err)
	assert.Equal(t, "Updated Content", updated.Content)
	assert.Equal(t, "Graphs", updated.Title)
	assert.Equal(t, "DSA", updated.Category)
	assert.Equal(t, owner.ID, updated.OwnerID)

	path := tempFile(t)
	updated, err = f.blogs.Update(ctx, created.ID.String(), owner.ID, UpdateBlogInput{Title: ptr(" Trees "), ThumbnailPath: path})
	require.NoError(t, err)
	assert.Equal(t, "Trees", updated.Title)
	assert.Equal(t, f.uploader.url, updated.ThumbnailURL)
	assert.NoFileExists(t, path)

	stored, err := f.blogs.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Trees", stored.Title)
	assert.Equal(t, "Updated Content", stored.Content)
	assert.True(t, stored.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdateBlog_Errors(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	other := f.user(t, "bobby")
	created := f.blog(t, owner.ID, "Graphs", "DSA")
	id := created.ID.String()
	ctx := context.Background()

	tests := []struct {
		name   string
		id     string
		caller uuid.UUID
		in     UpdateBlogInput
		want   error
	}{
		{"empty patch wins over bad id", "bad", owner.ID, UpdateBlogInput{}, ErrEmptyPatch},
		{"bad id", "bad", owner.ID, UpdateBlogInput{Title: ptr("Valid")}, domain.ErrInvalidID},
		{"missing", uuid.NewString(), owner.ID, UpdateBlogInput{Title: ptr("Valid")}, domain.ErrBlogNotFound},
		{"not owner", id, other.ID, UpdateBlogInput{Title: ptr("Valid")}, ErrNotBlogOwner},
		{"not owner before validation", id, other.ID, UpdateBlogInput{Title: ptr("x")}, ErrNotBlogOwner},
		{"short title", id, owner.ID, UpdateBlogInput{Title: ptr("x")}, domain.ErrValidation},
		{"blank content", id, owner.ID, UpdateBlogInput{Content: ptr("  ")}, domain.ErrValidation},
		{"long category", id, owner.ID, UpdateBlogInput{Category: ptr("0123456789012345678901234567890")}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blog, err := f.blogs.Update(ctx, tt.id, tt.caller, tt.in)

			assert.Nil(t, blog)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	stored, err := f.blogs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Graphs", stored.Title)
	assert.Equal(t, created.Content, stored.Content)
	assert.Equal(t, "DSA", stored.Category)
}

func TestDeleteBlog(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "alice")
	other := f.user(t, "bobby")
	created := f.blog(t, owner.ID, "Graphs", "DSA")
	id := created.ID.String()
	ctx := context.Background()

	assert.ErrorIs(t, f.blogs.Delete(ctx, "nope", owner.ID), domain.ErrInvalidID)
	assert.ErrorIs(t, f.blogs.Delete(ctx, id, other.ID), ErrNotBlogOwner)

	require.NoError(t, f.blogs.Delete(ctx, id, owner.ID))

	_, err := f.blogs.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrBlogNotFound)
	assert.ErrorIs(t, f.blogs.Delete(ctx, id, owner.ID), domain.ErrBlogNotFound)
}

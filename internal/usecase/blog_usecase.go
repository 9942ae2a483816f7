package usecase

import (
	"context"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

// ImageUploader stores a local file somewhere durable and returns its URL.
type ImageUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

var (
	ErrEmptyPatch   = domain.NewValidationError("At least one field is required to update")
	ErrNotBlogOwner = domain.NewForbiddenError("You are not allowed to modify this blog")
)

const thumbnailUploadFailed = "Failed to upload thumbnail"

type CreateBlogInput struct {
	Title         string `validate:"notblank,min=3,max=30"`
	Content       string `validate:"notblank"`
	Category      string `validate:"notblank,min=2,max=30"`
	ThumbnailPath string `validate:"-"`
}

var blogMessages = fieldMessages{
	blank: "Title, content and category are required",
	fields: map[string]string{
		"Title":    "Title should be between 3 and 30 characters long",
		"Category": "Category should be between 2 and 30 characters long",
	},
}

// UpdateBlogInput is a partial update. Nil fields are left unchanged.
type UpdateBlogInput struct {
	Title         *string `validate:"omitnil,notblank,min=3,max=30"`
	Content       *string `validate:"omitnil,notblank"`
	Category      *string `validate:"omitnil,notblank,min=2,max=30"`
	ThumbnailPath string  `validate:"-"`
}

func (in UpdateBlogInput) empty() bool {
	return in.Title == nil && in.Content == nil && in.Category == nil && in.ThumbnailPath == ""
}

var updateBlogMessages = fieldMessages{
	fields: map[string]string{
		"Title":    blogMessages.fields["Title"],
		"Content":  "Content cannot be empty",
		"Category": blogMessages.fields["Category"],
	},
}

type BlogUsecase struct {
	blogRepo domain.BlogRepository
	uploader ImageUploader
	v        *validator.Validate
}

func NewBlogUsecase(blogRepo domain.BlogRepository, uploader ImageUploader, v *validator.Validate) *BlogUsecase {
	return &BlogUsecase{
		blogRepo: blogRepo,
		uploader: uploader,
		v:        v,
	}
}

func (u *BlogUsecase) Create(ctx context.Context, ownerID uuid.UUID, in CreateBlogInput) (*domain.Blog, error) {
	defer removeLocal(in.ThumbnailPath)
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	if err := validate(u.v, in, blogMessages); err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		OwnerID:  ownerID,
	}

	if in.ThumbnailPath != "" {
		url, err := u.upload(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, err
		}
		blog.ThumbnailURL = url
	}

	if err := u.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// List runs q and reports ErrNoBlogsFound alongside the page when the
// requested page holds no blogs.
func (u *BlogUsecase) List(ctx context.Context, q *domain.BlogQuery) (*domain.BlogPage, error) {
	blogs, total, err := u.blogRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*domain.Blog{}
	}

	page := &domain.BlogPage{
		Blogs:      blogs,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages(total, q.Limit),
	}
	if len(blogs) == 0 {
		return page, domain.ErrNoBlogsFound
	}
	return page, nil
}

func (u *BlogUsecase) GetByID(ctx context.Context, rawID string) (*domain.Blog, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return u.get(ctx, id)
}

func (u *BlogUsecase) Update(ctx context.Context, rawID string, callerID uuid.UUID, in UpdateBlogInput) (*domain.Blog, error) {
	defer removeLocal(in.ThumbnailPath)

	if in.empty() {
		return nil, ErrEmptyPatch
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	blog, err := u.owned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	in.Title = trimmed(in.Title)
	in.Category = trimmed(in.Category)
	if err := validate(u.v, in, updateBlogMessages); err != nil {
		return nil, err
	}

	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}
	if in.Category != nil {
		blog.Category = *in.Category
	}
	if in.ThumbnailPath != "" {
		url, err := u.upload(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, err
		}
		if url != "" {
			blog.ThumbnailURL = url
		}
	}

	if err := u.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (u *BlogUsecase) Delete(ctx context.Context, rawID string, callerID uuid.UUID) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if _, err := u.owned(ctx, id, callerID); err != nil {
		return err
	}
	return u.blogRepo.Delete(ctx, id)
}

func (u *BlogUsecase) get(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	blog, err := u.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, domain.ErrBlogNotFound
	}
	return blog, nil
}

func (u *BlogUsecase) owned(ctx context.Context, id, callerID uuid.UUID) (*domain.Blog, error) {
	blog, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.OwnerID != callerID {
		return nil, ErrNotBlogOwner
	}
	return blog, nil
}

func (u *BlogUsecase) upload(ctx context.Context, path string) (string, error) {
	if u.uploader == nil {
		return "", nil
	}
	url, err := u.uploader.Upload(ctx, path)
	if err != nil {
		return "", domain.NewInternalError(thumbnailUploadFailed, err)
	}
	return url, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// removeLocal deletes a temporary upload once it has been handled.
func removeLocal(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}

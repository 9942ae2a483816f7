package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

var (
	ErrCommentNotFound = domain.NewNotFoundError("Comment not found")
	ErrNotCommentOwner = domain.NewForbiddenError("You are not allowed to delete this comment")
)

type commentInput struct {
	Content string `validate:"notblank,max=1000"`
}

var commentMessages = fieldMessages{
	blank: "Comment content is required",
	fields: map[string]string{
		"Content": "Comment should be at most 1000 characters long",
	},
}

type EngagementUsecase struct {
	blogRepo    domain.BlogRepository
	commentRepo domain.CommentRepository
	upvoteRepo  domain.UpvoteRepository
	savedRepo   domain.SavedBlogRepository
	v           *validator.Validate
}

func NewEngagementUsecase(
	blogRepo domain.BlogRepository,
	commentRepo domain.CommentRepository,
	upvoteRepo domain.UpvoteRepository,
	savedRepo domain.SavedBlogRepository,
	v *validator.Validate,
) *EngagementUsecase {
	return &EngagementUsecase{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		upvoteRepo:  upvoteRepo,
		savedRepo:   savedRepo,
		v:           v,
	}
}

func (u *EngagementUsecase) AddComment(ctx context.Context, rawBlogID string, callerID uuid.UUID, content string) (*domain.Comment, error) {
	blogID, err := u.existingBlog(ctx, rawBlogID)
	if err != nil {
		return nil, err
	}

	in := commentInput{Content: strings.TrimSpace(content)}
	if err := validate(u.v, in, commentMessages); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		BlogID:  blogID,
		OwnerID: callerID,
		Content: in.Content,
	}
	if err := u.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (u *EngagementUsecase) ListComments(ctx context.Context, rawBlogID string, page, limit int) (*domain.CommentPage, error) {
	blogID, err := u.existingBlog(ctx, rawBlogID)
	if err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	comments, total, err := u.commentRepo.ListByBlog(ctx, blogID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}

	return &domain.CommentPage{
		Comments:   comments,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (u *EngagementUsecase) DeleteComment(ctx context.Context, rawCommentID string, callerID uuid.UUID) error {
	id, err := parseID(rawCommentID)
	if err != nil {
		return err
	}

	comment, err := u.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.OwnerID != callerID {
		return ErrNotCommentOwner
	}

	return u.commentRepo.Delete(ctx, id)
}

// ToggleUpvote flips the caller's vote and returns the new state and total.
func (u *EngagementUsecase) ToggleUpvote(ctx context.Context, rawBlogID string, callerID uuid.UUID) (bool, int, error) {
	blogID, err := u.existingBlog(ctx, rawBlogID)
	if err != nil {
		return false, 0, err
	}

	upvoted, err := u.upvoteRepo.Toggle(ctx, blogID, callerID)
	if err != nil {
		return false, 0, err
	}

	count, err := u.upvoteRepo.CountByBlog(ctx, blogID)
	if err != nil {
		return false, 0, err
	}
	return upvoted, count, nil
}

func (u *EngagementUsecase) ToggleSave(ctx context.Context, rawBlogID string, callerID uuid.UUID) (bool, error) {
	blogID, err := u.existingBlog(ctx, rawBlogID)
	if err != nil {
		return false, err
	}
	return u.savedRepo.Toggle(ctx, callerID, blogID)
}

func (u *EngagementUsecase) ListSaved(ctx context.Context, callerID uuid.UUID, page, limit int) (*domain.SavedBlogPage, error) {
	page, limit = normalizePage(page, limit)

	blogs, total, err := u.savedRepo.ListByOwner(ctx, callerID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*domain.Blog{}
	}

	return &domain.SavedBlogPage{
		Blogs:      blogs,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (u *EngagementUsecase) existingBlog(ctx context.Context, rawID string) (uuid.UUID, error) {
	id, err := parseID(rawID)
	if err != nil {
		return uuid.Nil, err
	}

	blog, err := u.blogRepo.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if blog == nil {
		return uuid.Nil, domain.ErrBlogNotFound
	}
	return id, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

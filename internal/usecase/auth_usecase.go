package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/KDGehlot2003/codeblog.io/internal/auth"
	"github.com/KDGehlot2003/codeblog.io/internal/domain"
)

var (
	ErrUserExists         = domain.NewConflictError("User with email or username already exists")
	ErrInvalidCredentials = domain.NewUnauthorizedError("Invalid user credentials")
	ErrMissingToken       = domain.NewUnauthorizedError("Unauthorized request")
	ErrInvalidAccessToken = domain.NewUnauthorizedError("Invalid Access Token")
	ErrInvalidRefresh     = domain.NewUnauthorizedError("Invalid refresh token")
	ErrRefreshReused      = domain.NewUnauthorizedError("Refresh token is expired or used")
)

type RegisterInput struct {
	FullName         string `validate:"notblank"`
	Username         string `validate:"notblank,min=4,max=20"`
	Email            string `validate:"notblank,emailaddr"`
	Password         string `validate:"notblank,min=6"`
	ProfileImagePath string `validate:"-"`
}

var registerMessages = fieldMessages{
	blank: "All fields required",
	fields: map[string]string{
		"Username": "Username should be between 4 and 20 characters long",
		"Email":    "Invalid email address",
		"Password": "Password should be at least 6 characters long",
	},
}

// LoginInput identifies the user by username or email.
type LoginInput struct {
	Username string `validate:"required_without=Email"`
	Email    string
	Password string `validate:"required"`
}

var loginMessages = fieldMessages{
	fields: map[string]string{
		"Username": "username or email is required",
		"Password": "Password is required",
	},
}

type AuthUsecase struct {
	userRepo domain.UserRepository
	blogRepo domain.BlogRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
	uploader ImageUploader
	v        *validator.Validate
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	blogRepo domain.BlogRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	uploader ImageUploader,
	v *validator.Validate,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		blogRepo: blogRepo,
		hasher:   hasher,
		tokens:   tokens,
		uploader: uploader,
		v:        v,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	defer removeLocal(in.ProfileImagePath)

	if err := validate(u.v, in, registerMessages); err != nil {
		return nil, err
	}

	existing, err := u.userRepo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
	}

	if in.ProfileImagePath != "" && u.uploader != nil {
		url, err := u.uploader.Upload(ctx, in.ProfileImagePath)
		if err != nil {
			return nil, domain.NewInternalError("Failed to upload profile image", err)
		}
		user.ProfileImageURL = url
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user.Sanitized(), nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*domain.Session, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validate(u.v, in, loginMessages); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	ok, err := u.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.startSession(ctx, user)
}

// Logout drops the stored refresh token. Calling it again is a no-op.
func (u *AuthUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	return u.userRepo.ClearRefreshToken(ctx, userID)
}

// Authenticate resolves an access token to the user it was issued for.
func (u *AuthUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := u.tokens.VerifyAccess(token)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidAccessToken
	}

	return user.Sanitized(), nil
}

// Refresh exchanges the user's current refresh token for a new token pair.
// A token that is valid but no longer the stored one is rejected.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := u.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefresh
	}
	if user.CurrentRefreshToken == nil || *user.CurrentRefreshToken != refreshToken {
		return nil, ErrRefreshReused
	}

	return u.startSession(ctx, user)
}

func (u *AuthUsecase) Profile(ctx context.Context, username string) (*domain.UserProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, domain.NewValidationError("Username is missing")
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	count, err := u.blogRepo.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.UserProfile{
		Username:        user.Username,
		FullName:        user.FullName,
		ProfileImageURL: user.ProfileImageURL,
		BlogCount:       count,
		CreatedAt:       user.CreatedAt,
	}, nil
}

func (u *AuthUsecase) startSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	access, err := u.tokens.IssueAccess(auth.AccessClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := u.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := u.userRepo.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, err
	}

	return &domain.Session{
		User: user.Sanitized(),
		TokenPair: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}

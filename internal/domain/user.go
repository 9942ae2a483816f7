package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID `json:"_id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FullName            string    `json:"fullName"`
	ProfileImageURL     string    `json:"profileImage,omitempty"`
	PasswordHash        string    `json:"-"`
	CurrentRefreshToken *string   `json:"-"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Sanitized returns a copy without credential material.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.CurrentRefreshToken = nil
	return &clone
}

// UserProfile is the public view of another user.
type UserProfile struct {
	Username        string    `json:"username"`
	FullName        string    `json:"fullName"`
	ProfileImageURL string    `json:"profileImage,omitempty"`
	BlogCount       int       `json:"blogCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UserRepository returns (nil, nil) from finders when no user matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
}

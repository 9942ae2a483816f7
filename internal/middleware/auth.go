package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KDGehlot2003/codeblog.io/internal/domain"
	"github.com/KDGehlot2003/codeblog.io/internal/response"
	"github.com/KDGehlot2003/codeblog.io/internal/usecase"
)

type contextKey string

const userKey contextKey = "user"

// AccessTokenCookie is read before the Authorization header.
const AccessTokenCookie = "accessToken"

type AuthMiddleware struct {
	authUsecase *usecase.AuthUsecase
	log         *zap.Logger
}

func NewAuthMiddleware(authUsecase *usecase.AuthUsecase, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{authUsecase: authUsecase, log: log}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authUsecase.Authenticate(r.Context(), accessToken(r))
		if err != nil {
			response.Error(w, m.log, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

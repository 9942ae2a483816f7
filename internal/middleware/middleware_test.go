package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KDGehlot2003/codeblog.io/internal/auth"
	"github.com/KDGehlot2003/codeblog.io/internal/domain"
	"github.com/KDGehlot2003/codeblog.io/internal/repository/memory"
	"github.com/KDGehlot2003/codeblog.io/internal/response"
	"github.com/KDGehlot2003/codeblog.io/internal/usecase"
)

type authFixture struct {
	mw      *AuthMiddleware
	session *domain.Session
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := memory.NewStore()
	tokens, err := auth.NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	uc := usecase.NewAuthUsecase(store.Users(), store.Blogs(), auth.NewPasswordHasher(), tokens, nil, usecase.NewValidator())
	ctx := context.Background()
	_, err = uc.Register(ctx, usecase.RegisterInput{
		FullName: "Ada Lovelace",
		Username: "ada_l",
		Email:    "ada@example.com",
		Password: "engine1",
	})
	require.NoError(t, err)
	session, err := uc.Login(ctx, usecase.LoginInput{Username: "ada_l", Password: "engine1"})
	require.NoError(t, err)

	return &authFixture{mw: NewAuthMiddleware(uc, zap.NewNop()), session: session}
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUser(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusTeapot)
		return
	}
	response.OK(w, user, "ok")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	f := newAuthFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+f.session.AccessToken)
	rec := httptest.NewRecorder()

	f.mw.Authenticate(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	assert.Equal(t, "ada_l", data["username"])
	assert.NotContains(t, data, "password")
}

func TestAuthenticate_CookieWinsOverHeader(t *testing.T) {
	f := newAuthFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: f.session.AccessToken})
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	f.mw.Authenticate(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_Rejects(t *testing.T) {
	f := newAuthFixture(t)
	tests := []struct {
		name    string
		prepare func(r *http.Request)
		message string
	}{
		{"no credentials", func(*http.Request) {}, "Unauthorized request"},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, "Unauthorized request"},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc.def.ghi") }, "Invalid Access Token"},
		{"refresh token used as access", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+f.session.RefreshToken)
		}, "Invalid Access Token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			called := false

			f.mw.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			})).ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	user := &domain.User{Username: "grace"}
	user.ID[0] = 1
	id, ok := GetUserID(WithUser(context.Background(), user))
	require.True(t, ok)
	assert.Equal(t, user.ID, id)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hi"))
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, first.Level)
	fields := first.ContextMap()
	assert.Equal(t, "/missing", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
	for _, v := range fields {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, "secret-token")
		}
	}

	second := logs.All()[1]
	assert.Equal(t, zapcore.InfoLevel, second.Level)
	assert.EqualValues(t, http.StatusOK, second.ContextMap()["status"])
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/metrics-test/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/{id}", "202"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/2", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/{id}", "202"))
	assert.Equal(t, before+2, after)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KDGehlot2003/codeblog.io/internal/config"
	"github.com/KDGehlot2003/codeblog.io/internal/domain"
	"github.com/KDGehlot2003/codeblog.io/internal/middleware"
	"github.com/KDGehlot2003/codeblog.io/internal/response"
	"github.com/KDGehlot2003/codeblog.io/internal/usecase"
)

const (
	refreshTokenCookie = "refreshToken"
	maxJSONBody        = 1 << 20
	healthTimeout      = 2 * time.Second
)

var (
	errInvalidBody   = domain.NewValidationError("Invalid request body")
	errUploadTooBig  = domain.NewValidationError("Uploaded file is too large")
	errInvalidUpload = domain.NewValidationError("Invalid multipart form")
)

// Options carries the settings handlers need beyond the usecases.
type Options struct {
	Cookie     config.CookieConfig
	Upload     config.UploadConfig
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Ping reports storage health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

type Handler struct {
	auth       *usecase.AuthUsecase
	blogs      *usecase.BlogUsecase
	engagement *usecase.EngagementUsecase
	opts       Options
	log        *zap.Logger
}

func NewHandler(
	auth *usecase.AuthUsecase,
	blogs *usecase.BlogUsecase,
	engagement *usecase.EngagementUsecase,
	opts Options,
	log *zap.Logger,
) *Handler {
	return &Handler{
		auth:       auth,
		blogs:      blogs,
		engagement: engagement,
		opts:       opts,
		log:        log,
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	response.Error(w, h.log, err)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.opts.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.opts.Ping(ctx); err != nil {
			h.log.Warn("health check failed", zap.Error(err))
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, "Database unavailable")
			return
		}
	}
	response.OK(w, map[string]string{"status": "ok"}, "OK")
}

func (h *Handler) notFound(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusNotFound, struct{}{}, "Route not found")
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusMethodNotAllowed, struct{}{}, "Method not allowed")
}

// caller returns the authenticated user's id. Routes behind Authenticate
// always have one.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.fail(w, usecase.ErrMissingToken)
	}
	return id, ok
}

// decodeJSON tolerates an empty body so that validation reports the
// missing fields instead of a parse error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.Upload.MaxBytes)
	if err := r.ParseMultipartForm(h.opts.Upload.MaxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return errUploadTooBig
		}
		return errInvalidUpload
	}
	return nil
}

// saveUpload copies the named multipart file into the upload directory and
// returns its path, or "" when the field is absent. The caller owns the file.
func (h *Handler) saveUpload(r *http.Request, field string) (string, error) {
	src, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", errInvalidUpload
	}
	defer src.Close()

	if err := os.MkdirAll(h.opts.Upload.Dir, 0o750); err != nil {
		return "", domain.NewInternalError("Failed to store upload", err)
	}
	dst, err := os.CreateTemp(h.opts.Upload.Dir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", domain.NewInternalError("Failed to store upload", err)
	}

	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", domain.NewInternalError("Failed to store upload", err)
	}
	return dst.Name(), nil
}

// formValue returns nil when key was not submitted at all.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) sessionCookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.opts.Cookie.Domain,
		HttpOnly: true,
		Secure:   h.opts.Cookie.Secure,
		SameSite: h.opts.Cookie.SameSiteMode(),
	}
	switch {
	case ttl > 0:
		c.MaxAge = int(ttl.Seconds())
	case ttl < 0:
		c.MaxAge = -1
	}
	return c
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, s *domain.Session) {
	http.SetCookie(w, h.sessionCookie(middleware.AccessTokenCookie, s.AccessToken, h.opts.AccessTTL))
	http.SetCookie(w, h.sessionCookie(refreshTokenCookie, s.RefreshToken, h.opts.RefreshTTL))
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.sessionCookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, h.sessionCookie(refreshTokenCookie, "", -1))
}

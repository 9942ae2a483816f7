package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KDGehlot2003/codeblog.io/internal/middleware"
	"github.com/KDGehlot2003/codeblog.io/internal/response"
	"github.com/KDGehlot2003/codeblog.io/internal/usecase"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register accepts JSON, or a multipart form with an optional profileImage.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterInput

	if isMultipart(r) {
		if err := h.parseMultipart(w, r); err != nil {
			h.fail(w, err)
			return
		}
		path, err := h.saveUpload(r, "profileImage")
		if err != nil {
			h.fail(w, err)
			return
		}
		in = usecase.RegisterInput{
			FullName:         r.FormValue("fullName"),
			Username:         r.FormValue("username"),
			Email:            r.FormValue("email"),
			Password:         r.FormValue("password"),
			ProfileImagePath: path,
		}
	} else {
		var req registerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.fail(w, err)
			return
		}
		in = usecase.RegisterInput{
			FullName: req.FullName,
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		}
	}

	user, err := h.auth.Register(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.Created(w, user, "User registered successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}

	session, err := h.auth.Login(r.Context(), usecase.LoginInput(req))
	if err != nil {
		h.fail(w, err)
		return
	}

	h.setSessionCookies(w, session)
	response.OK(w, session, "User logged in successfully")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.auth.Logout(r.Context(), userID); err != nil {
		h.fail(w, err)
		return
	}

	h.clearSessionCookies(w)
	response.OK(w, struct{}{}, "User logged out")
}

// RefreshToken reads the refresh token from its cookie, falling back to the
// request body.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.fail(w, err)
			return
		}
		token = req.RefreshToken
	}

	session, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.setSessionCookies(w, session)
	response.OK(w, session.TokenPair, "Access token refreshed")
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.fail(w, usecase.ErrMissingToken)
		return
	}
	response.OK(w, user, "Current user fetched successfully")
}

func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.auth.Profile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, profile, "User profile fetched successfully")
}

func (h *Handler) GetSavedBlogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	page, err := h.engagement.ListSaved(r.Context(), userID, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, page, "Saved blogs fetched successfully")
}

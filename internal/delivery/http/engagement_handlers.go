package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KDGehlot2003/codeblog.io/internal/response"
)

type commentRequest struct {
	Content string `json:"content"`
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	page, err := h.engagement.ListComments(r.Context(), chi.URLParam(r, "id"), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, page, "Comments fetched successfully")
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}

	comment, err := h.engagement.AddComment(r.Context(), chi.URLParam(r, "id"), userID, req.Content)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.Created(w, comment, "Comment added successfully")
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.engagement.DeleteComment(r.Context(), chi.URLParam(r, "commentId"), userID); err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, struct{}{}, "Comment deleted successfully")
}

func (h *Handler) ToggleUpvote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	upvoted, count, err := h.engagement.ToggleUpvote(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.fail(w, err)
		return
	}

	message := "Upvote removed"
	if upvoted {
		message = "Blog upvoted"
	}
	response.OK(w, map[string]any{"upvoted": upvoted, "upvotes": count}, message)
}

func (h *Handler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	saved, err := h.engagement.ToggleSave(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.fail(w, err)
		return
	}

	message := "Blog removed from saved"
	if saved {
		message = "Blog saved"
	}
	response.OK(w, map[string]any{"saved": saved}, message)
}

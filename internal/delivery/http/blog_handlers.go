package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KDGehlot2003/codeblog.io/internal/response"
	"github.com/KDGehlot2003/codeblog.io/internal/usecase"
)

type createBlogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type updateBlogRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// ListBlogs answers 404 with the page totals when the requested page is empty.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	q, err := usecase.BuildBlogQuery(r.URL.Query())
	if err != nil {
		h.fail(w, err)
		return
	}

	page, err := h.blogs.List(r.Context(), q)
	if err != nil {
		if page != nil {
			response.ErrorWithData(w, h.log, err, page)
			return
		}
		h.fail(w, err)
		return
	}
	response.OK(w, page, "Blogs fetched successfully")
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var in usecase.CreateBlogInput
	if isMultipart(r) {
		if err := h.parseMultipart(w, r); err != nil {
			h.fail(w, err)
			return
		}
		path, err := h.saveUpload(r, "thumbnail")
		if err != nil {
			h.fail(w, err)
			return
		}
		in = usecase.CreateBlogInput{
			Title:         r.FormValue("title"),
			Content:       r.FormValue("content"),
			Category:      r.FormValue("category"),
			ThumbnailPath: path,
		}
	} else {
		var req createBlogRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.fail(w, err)
			return
		}
		in = usecase.CreateBlogInput{Title: req.Title, Content: req.Content, Category: req.Category}
	}

	blog, err := h.blogs.Create(r.Context(), userID, in)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.Created(w, blog, "Blog created successfully")
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, blog, "Blog fetched successfully")
}

// UpdateBlog applies only the fields present in the request.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var in usecase.UpdateBlogInput
	if isMultipart(r) {
		if err := h.parseMultipart(w, r); err != nil {
			h.fail(w, err)
			return
		}
		path, err := h.saveUpload(r, "thumbnail")
		if err != nil {
			h.fail(w, err)
			return
		}
		in = usecase.UpdateBlogInput{
			Title:         formValue(r, "title"),
			Content:       formValue(r, "content"),
			Category:      formValue(r, "category"),
			ThumbnailPath: path,
		}
	} else {
		var req updateBlogRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.fail(w, err)
			return
		}
		in = usecase.UpdateBlogInput{Title: req.Title, Content: req.Content, Category: req.Category}
	}

	blog, err := h.blogs.Update(r.Context(), chi.URLParam(r, "id"), userID, in)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, blog, "Blog updated successfully")
}

func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.blogs.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.fail(w, err)
		return
	}
	response.OK(w, struct{}{}, "Blog deleted successfully")
}

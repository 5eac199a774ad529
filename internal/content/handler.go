package content

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karthikcsq/personalsite/internal/api"
)

// Handler serves the blog and work-history endpoints.
type Handler struct {
	blog *BlogStore
	work *WorkStore
}

func NewHandler(blog *BlogStore, work *WorkStore) *Handler {
	return &Handler{blog: blog, work: work}
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.List()
	if err != nil {
		slog.Error("listing blog posts", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	api.JSON(w, http.StatusOK, posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.blog.Get(slug)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			api.HandleError(w, api.NewNotFoundError("post not found"))
			return
		}
		slog.Error("loading blog post", "slug", slug, "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	api.JSON(w, http.StatusOK, post)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.work.List()
	if err != nil {
		slog.Error("loading work history", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	api.JSON(w, http.StatusOK, jobs)
}

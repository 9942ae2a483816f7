package http

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/KDGehlot2003/codeblog.io/internal/middleware"
)

func NewRouter(handler *Handler, authMiddleware *middleware.AuthMiddleware, allowedOrigins []string, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(handler.notFound)
	r.MethodNotAllowed(handler.methodNotAllowed)

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handler.Register)
			r.Post("/login", handler.Login)
			r.Post("/refresh-token", handler.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/logout", handler.Logout)
				r.Get("/current-user", handler.GetCurrentUser)
				r.Get("/c/{username}", handler.GetUserProfile)
				r.Get("/saved-blogs", handler.GetSavedBlogs)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/blogs", func(r chi.Router) {
				r.Get("/", handler.ListBlogs)
				r.Post("/", handler.CreateBlog)
				r.Get("/{id}", handler.GetBlog)
				r.Patch("/{id}", handler.UpdateBlog)
				r.Delete("/{id}", handler.DeleteBlog)

				r.Get("/{id}/comments", handler.ListComments)
				r.Post("/{id}/comments", handler.AddComment)
				r.Post("/{id}/upvote", handler.ToggleUpvote)
				r.Post("/{id}/save", handler.ToggleSave)
			})

			r.Delete("/comments/{commentId}", handler.DeleteComment)
		})
	})

	return r
}

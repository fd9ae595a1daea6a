package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGenre(
	r chi.Router,
	genreHandler *adaptor.GenreHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/v1/genres - List genres (public)
	r.Get("/api/v1/genres", genreHandler.ListGenres)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// POST /api/v1/genres - Create genre (admin)
		r.Post("/api/v1/genres", genreHandler.CreateGenre)

		// DELETE /api/v1/genres/{slug} - Delete genre (admin)
		r.Delete("/api/v1/genres/{slug}", genreHandler.DeleteGenre)
	})
}

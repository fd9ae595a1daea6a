package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCategory(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/v1/categories - List categories (public)
	r.Get("/api/v1/categories", categoryHandler.ListCategories)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// POST /api/v1/categories - Create category (admin)
		r.Post("/api/v1/categories", categoryHandler.CreateCategory)

		// DELETE /api/v1/categories/{slug} - Delete category (admin)
		r.Delete("/api/v1/categories/{slug}", categoryHandler.DeleteCategory)
	})
}

package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/v1/titles - List titles with filters (public)
	r.Get("/api/v1/titles", titleHandler.ListTitles)

	// GET /api/v1/titles/{title_id} - Retrieve one title (public)
	r.Get("/api/v1/titles/{title_id}", titleHandler.GetTitle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// POST /api/v1/titles - Create title (admin)
		r.Post("/api/v1/titles", titleHandler.CreateTitle)

		// PATCH /api/v1/titles/{title_id} - Update title (admin)
		r.Patch("/api/v1/titles/{title_id}", titleHandler.UpdateTitle)

		// DELETE /api/v1/titles/{title_id} - Delete title (admin)
		r.Delete("/api/v1/titles/{title_id}", titleHandler.DeleteTitle)
	})
}

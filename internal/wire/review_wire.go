package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/v1/titles/{title_id}/reviews - List reviews (public)
	r.Get("/api/v1/titles/{title_id}/reviews", reviewHandler.ListReviews)

	// GET /api/v1/titles/{title_id}/reviews/{review_id} - Retrieve one review (public)
	r.Get("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.GetReview)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// POST /api/v1/titles/{title_id}/reviews - Create review (authenticated)
		r.Post("/api/v1/titles/{title_id}/reviews", reviewHandler.CreateReview)

		// PATCH /api/v1/titles/{title_id}/reviews/{review_id} - Update review (author/moderator)
		r.Patch("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.UpdateReview)

		// DELETE /api/v1/titles/{title_id}/reviews/{review_id} - Delete review (author/moderator)
		r.Delete("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.DeleteReview)
	})
}

package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	base := "/api/v1/titles/{title_id}/reviews/{review_id}/comments"

	// List and retrieve are public.
	r.Get(base, commentHandler.ListComments)
	r.Get(base+"/{comment_id}", commentHandler.GetComment)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// POST - Create comment (authenticated)
		r.Post(base, commentHandler.CreateComment)

		// PATCH / DELETE - author or moderator
		r.Patch(base+"/{comment_id}", commentHandler.UpdateComment)
		r.Delete(base+"/{comment_id}", commentHandler.DeleteComment)
	})
}

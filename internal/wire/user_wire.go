package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Every user endpoint requires authentication; the admin gate on
	// the collection routes is enforced by the service.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, config.JWT.Secret, log))

		// Self-service profile; registered before {username} so "me"
		// never resolves as a lookup key.
		r.Get("/api/v1/users/me", userHandler.GetMe)
		r.Patch("/api/v1/users/me", userHandler.UpdateMe)
		r.Delete("/api/v1/users/me", userHandler.DeleteMe)

		// Admin account management
		r.Get("/api/v1/users", userHandler.ListUsers)
		r.Post("/api/v1/users", userHandler.CreateUser)
		r.Get("/api/v1/users/{username}", userHandler.GetUser)
		r.Patch("/api/v1/users/{username}", userHandler.UpdateUser)
		r.Delete("/api/v1/users/{username}", userHandler.DeleteUser)
	})
}

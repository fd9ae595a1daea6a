package wire

import (
	"time"

	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Both endpoints are public and abuse-prone, so they carry a
	// per-IP rate limit.
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))

		// POST /api/v1/auth/signup - Register and receive a confirmation code
		r.Post("/api/v1/auth/signup", authHandler.Signup)

		// POST /api/v1/auth/token - Exchange confirmation code for an access token
		r.Post("/api/v1/auth/token", authHandler.IssueToken)
	})
}

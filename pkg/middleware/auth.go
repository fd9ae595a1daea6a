package middleware

import (
	"net/http"
	"strings"

	"review-catalog/internal/data/repository"
	"review-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate validates the bearer access token and loads the user it
// names into the request context. Loading the row (rather than trusting
// the role claim) means role changes take effect on the next request,
// not at token expiry.
func Authenticate(userRepo repository.UserRepository, jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseAccessToken(jwtSecret, parts[1])
			if err != nil {
				logger.Warn("Invalid access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := utils.ParseUUID(claims.Subject)
			if err != nil {
				logger.Warn("Malformed token subject", zap.String("sub", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err),
					zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token for deleted user", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetCurrentUser(r.Context(), utils.CurrentUser{
				ID:        user.ID,
				Username:  user.Username,
				Role:      string(user.Role),
				Superuser: user.IsSuperuser,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

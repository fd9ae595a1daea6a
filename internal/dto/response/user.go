package response

import (
	"review-catalog/internal/data/entity"
)

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Bio:       user.Bio,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

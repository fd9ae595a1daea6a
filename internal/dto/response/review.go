package response

import (
	"time"

	"review-catalog/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewToResponse renders author and title by name, matching the read
// representation used everywhere else.
func ReviewToResponse(review *entity.Review, authorUsername, titleName string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		Title:     titleName,
		Author:    authorUsername,
		Text:      review.Text,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}

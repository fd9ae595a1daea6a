package response

import (
	"review-catalog/internal/data/entity"
)

type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
	Rating      *float64          `json:"rating"`
}

// TitleToResponse embeds the related category and genres; rating stays
// nil when the title has no reviews.
func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Genre:       []GenreResponse{},
		Rating:      title.Rating,
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	for _, genre := range genres {
		resp.Genre = append(resp.Genre, GenreToResponse(genre))
	}

	return resp
}

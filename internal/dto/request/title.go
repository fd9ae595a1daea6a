package request

// Category and Genre are referenced by slug on the write path; the read
// path embeds the full objects.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,max=50,slug"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,max=50,slug"`
	Genre       *[]string `json:"genre,omitempty" validate:"omitempty,dive,max=50,slug"`
}

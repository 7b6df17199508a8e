package request

// Genres and category are referenced by slug on writes.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,slug"`
	Category    string   `json:"category" validate:"required,slug"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Genre       *[]string `json:"genre,omitempty" validate:"omitempty,min=1,dive,slug"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,slug"`
}

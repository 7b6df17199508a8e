package response

import (
	"yamdb-api/internal/data/entity"
)

// TitleResponse is the read shape. Rating is nil when the title has no
// reviews yet.
type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func TitleToResponse(title *entity.Title, rating *int, genres []*entity.Genre, category *entity.Category) TitleResponse {
	genreResponses := make([]GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = GenreToResponse(genre)
	}

	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       genreResponses,
	}

	if category != nil {
		categoryResp := CategoryToResponse(category)
		resp.Category = &categoryResp
	}

	return resp
}

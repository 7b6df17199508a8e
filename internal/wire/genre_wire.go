package wire

import (
	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler) {
	r.Route("/genres", func(r chi.Router) {
		r.Get("/", genreHandler.ListGenres)
		r.Post("/", genreHandler.CreateGenre)
		r.Delete("/{slug}", genreHandler.DeleteGenre)
	})
}

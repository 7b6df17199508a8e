package wire

import (
	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler) {
	r.Route("/categories", func(r chi.Router) {
		// Listing is public; writes are checked in the service.
		r.Get("/", categoryHandler.ListCategories)
		r.Post("/", categoryHandler.CreateCategory)
		r.Delete("/{slug}", categoryHandler.DeleteCategory)
	})
}

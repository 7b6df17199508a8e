package wire

import (
	"yamdb-api/internal/adaptor"
	"yamdb-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireTitle mounts titles and the review/comment trees nested under them.
func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	log *zap.Logger,
) {
	r.Route("/titles", func(r chi.Router) {
		r.Get("/", titleHandler.ListTitles)
		r.Post("/", titleHandler.CreateTitle)
		r.Get("/{titleID}", titleHandler.GetTitle)
		r.Patch("/{titleID}", titleHandler.UpdateTitle)
		r.Delete("/{titleID}", titleHandler.DeleteTitle)

		r.Route("/{titleID}/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.ListReviews)
			r.Get("/{reviewID}", reviewHandler.GetReview)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(log))
				r.Post("/", reviewHandler.CreateReview)
				r.Patch("/{reviewID}", reviewHandler.UpdateReview)
				r.Delete("/{reviewID}", reviewHandler.DeleteReview)
			})

			r.Route("/{reviewID}/comments", func(r chi.Router) {
				r.Get("/", commentHandler.ListComments)
				r.Get("/{commentID}", commentHandler.GetComment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuth(log))
					r.Post("/", commentHandler.CreateComment)
					r.Patch("/{commentID}", commentHandler.UpdateComment)
					r.Delete("/{commentID}", commentHandler.DeleteComment)
				})
			})
		})
	})
}

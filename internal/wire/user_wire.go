package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"
	"yamdb-api/pkg/middleware"
	"yamdb-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth(log))

		// Self-service profile. Registered before {username} so chi
		// matches the literal segment first.
		r.Get("/me", userHandler.GetProfile)
		r.Patch("/me", userHandler.UpdateProfile)

		// Admin user management, keyed by username.
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/{username}", userHandler.GetUser)
		r.Patch("/{username}", userHandler.UpdateUser)
		r.Delete("/{username}", userHandler.DeleteUser)

		// Full replacement is not supported, partial update only.
		r.Put("/{username}", func(w http.ResponseWriter, r *http.Request) {
			utils.ResponseMethodNotAllowed(w, "Use PATCH for partial updates")
		})
	})
}

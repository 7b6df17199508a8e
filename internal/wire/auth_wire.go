package wire

import (
	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Route("/auth", func(r chi.Router) {
		// POST /api/v1/auth/signup - register (or re-request a code)
		r.Post("/signup", authHandler.Signup)

		// POST /api/v1/auth/token - exchange a confirmation code for a JWT
		r.Post("/token", authHandler.IssueToken)
	})
}

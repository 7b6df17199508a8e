package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/mailer"
	"yamdb-api/pkg/middleware"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

func Wiring(
	repo *repository.Repository,
	tokens token.Manager,
	mail mailer.Mailer,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, tokens, mail, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, tokens, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, tokens token.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Authenticate(tokens, logger))

	r.Route("/api/v1", func(r chi.Router) {
		wireAuth(r, handler.Auth)
		wireUser(r, handler.User, logger)
		wireCategory(r, handler.Category)
		wireGenre(r, handler.Genre)
		wireTitle(r, handler.Title, handler.Review, handler.Comment, logger)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

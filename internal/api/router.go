package api

import (
	"net/http"

	"github.com/benarowo/circleconnect/internal/api/handlers"
	"github.com/benarowo/circleconnect/internal/api/middleware"
	"github.com/benarowo/circleconnect/internal/config"
	"github.com/benarowo/circleconnect/internal/realtime"
	"github.com/benarowo/circleconnect/internal/repository"
	"github.com/benarowo/circleconnect/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, hub *realtime.Hub, repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth, cfg.JWTTTL, logger)
	oauthHandler := handlers.NewOAuthHandler(services.Auth, cfg.FrontendURL, cfg.JWTTTL, logger)
	userHandler := handlers.NewUserHandler(repos.User, logger)
	notificationHandler := handlers.NewNotificationHandler(services.Notification, logger)
	circleHandler := handlers.NewCircleHandler(services.Circle, logger)
	projectHandler := handlers.NewProjectHandler(services.Project, logger)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth, logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/jwt/login", authHandler.Login)
		r.Post("/jwt/register", authHandler.Register)

		r.Get("/{provider}", oauthHandler.Begin)
		r.Get("/{provider}/callback", oauthHandler.Callback)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/logout", authHandler.Logout)
		})
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Route("/user", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/notification", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Patch("/markAll", notificationHandler.MarkAll)
			r.Patch("/{id}/markAsRead", notificationHandler.MarkAsRead)
			r.Patch("/{id}/markAsUnread", notificationHandler.MarkAsUnread)
		})

		r.Route("/circle", func(r chi.Router) {
			r.Get("/", circleHandler.List)
			r.Post("/", circleHandler.Create)
			r.Get("/{id}", circleHandler.Get)
			r.Patch("/{id}", circleHandler.Update)
			r.Delete("/{id}", circleHandler.Delete)
			r.Post("/{id}/join", circleHandler.Join)
			r.Post("/{id}/leave", circleHandler.Leave)
		})

		r.Route("/project", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Get("/{id}", projectHandler.Get)
			r.Patch("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
			r.Get("/{id}/review", projectHandler.ListReviews)
			r.Post("/{id}/review", projectHandler.CreateReview)
		})

		r.Route("/review", func(r chi.Router) {
			r.Patch("/{id}", projectHandler.UpdateReview)
			r.Delete("/{id}", projectHandler.DeleteReview)
		})
	})

	// WebSocket endpoint authenticates via token query parameter
	r.Get("/ws", wsHandler.Handle)

	return r
}

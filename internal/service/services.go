package service

import (
	"github.com/benarowo/circleconnect/internal/config"
	"github.com/benarowo/circleconnect/internal/realtime"
	"github.com/benarowo/circleconnect/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth         *AuthService
	Notification *NotificationService
	Circle       *CircleService
	Project      *ProjectService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, hub *realtime.Hub, limiter LoginRateLimiter, logger *zap.Logger) *Services {
	tokens := NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	auth := NewAuthService(repos, tokens, limiter, logger)
	if cfg.GoogleClientID != "" {
		auth.RegisterFederated(NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBase))
	}
	if cfg.GithubClientID != "" {
		auth.RegisterFederated(NewGithubProvider(cfg.GithubClientID, cfg.GithubClientSecret, cfg.OAuthRedirectBase))
	}

	notifications := NewNotificationService(repos.Notification, hub, logger)

	return &Services{
		Auth:         auth,
		Notification: notifications,
		Circle:       NewCircleService(repos.Circle),
		Project:      NewProjectService(repos.Project, repos.Review, notifications),
	}
}

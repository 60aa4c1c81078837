package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Tanishqstar/sentiment-command-center/internal/config"
	"github.com/Tanishqstar/sentiment-command-center/internal/domain"
	apperrors "github.com/Tanishqstar/sentiment-command-center/internal/errors"
	"github.com/Tanishqstar/sentiment-command-center/internal/websocket"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	service   domain.FeedbackService
	hub       *websocket.Hub
	postgres  postgresHealthChecker
	redis     redisHealthChecker
	startTime time.Time
}

func NewServer(cfg *config.Config, service domain.FeedbackService, hub *websocket.Hub, postgres postgresHealthChecker, redis redisHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware)
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		service:   service,
		hub:       hub,
		postgres:  postgres,
		redis:     redis,
		startTime: time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

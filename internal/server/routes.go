package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/api/version", s.handleVersion)

	// Feedback collection
	s.echo.GET("/api/feedback", s.handleListFeedback)
	s.echo.POST("/api/feedback", s.handleCreateFeedback, writeRateLimiter(s.config.WriteRateLimit))
	s.echo.PATCH("/api/feedback/:id/status", s.handleUpdateStatus)

	// Dashboard aggregates
	s.echo.GET("/api/metrics/summary", s.handleSummary)
	s.echo.GET("/api/metrics/trend", s.handleTrend)

	// Change event stream
	s.echo.GET("/ws", s.handleWebSocket)
}

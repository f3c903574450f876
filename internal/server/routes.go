package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Analysis endpoints
	s.echo.GET("/analyze/:user_id", s.handleAnalyzeUser)
	s.echo.GET("/results/:user_id", s.handleLatestResult)

	// Operator endpoints
	s.echo.GET("/api/users", s.handleListUsers)
	s.echo.GET("/api/analyze-all", s.handleAnalyzeAll)
}

// Package server exposes the analysis service over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pscheid92/mindpulse/internal/config"
	"github.com/pscheid92/mindpulse/internal/domain"
	apperrors "github.com/pscheid92/mindpulse/internal/errors"
)

// AnalysisRunner is the subset of the application service the server needs.
type AnalysisRunner interface {
	AnalyzeUser(ctx context.Context, userID string) (domain.AnalysisReport, error)
	AnalyzeAll(ctx context.Context) ([]domain.AnalysisReport, error)
	ListUsers(ctx context.Context) ([]string, error)
	LatestResult(ctx context.Context, userID string) (*domain.AnalysisReport, error)
}

// healthChecker is a minimal interface for dependency health checks.
type healthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	app         AnalysisRunner
	storeHealth healthChecker
	cacheHealth healthChecker // nil when Redis is not configured
	startTime   time.Time
}

func NewServer(cfg *config.Config, app AnalysisRunner, storeHealth, cacheHealth healthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:        e,
		config:      cfg,
		app:         app,
		storeHealth: storeHealth,
		cacheHealth: cacheHealth,
		startTime:   time.Now(),
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

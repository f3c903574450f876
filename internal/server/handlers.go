package server

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/mindpulse/internal/domain"
	apperrors "github.com/pscheid92/mindpulse/internal/errors"
)

func (s *Server) handleAnalyzeUser(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return apperrors.ValidationError("user_id is required")
	}

	ctx := c.Request().Context()

	report, err := s.app.AnalyzeUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnhealthy) {
			return apperrors.ExternalError("entry store unavailable", err).WithField("user_id", userID)
		}
		return apperrors.ExternalError("failed to load entries", err).WithField("user_id", userID)
	}

	if err := c.JSON(200, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLatestResult(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return apperrors.ValidationError("user_id is required")
	}

	report, err := s.app.LatestResult(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			return apperrors.NotFoundError("no recent analysis result").WithField("user_id", userID)
		}
		return apperrors.InternalError("failed to load cached result", err).WithField("user_id", userID)
	}

	if err := c.JSON(200, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.app.ListUsers(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnhealthy) {
			return apperrors.ExternalError("entry store unavailable", err)
		}
		return apperrors.ExternalError("failed to list users", err)
	}

	if err := c.JSON(200, map[string]any{
		"total_users": len(users),
		"users":       users,
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeAll(c echo.Context) error {
	ctx := c.Request().Context()

	reports, err := s.app.AnalyzeAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnhealthy) {
			return apperrors.ExternalError("entry store unavailable", err)
		}
		return apperrors.ExternalError("failed to list users", err)
	}

	if err := c.JSON(200, map[string]any{
		"total_users_analyzed": len(reports),
		"results":              reports,
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

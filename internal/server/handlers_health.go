package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":  "healthy",
		"service": "mindpulse",
		"endpoints": map[string]string{
			"/analyze/{user_id}": "Run a risk analysis for one user",
			"/results/{user_id}": "Most recent cached result for one user",
			"/api/users":         "List every known user",
			"/api/analyze-all":   "Run a risk analysis for every known user",
			"/health/ready":      "Readiness check",
		},
	})
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	checks := []struct {
		name string
		fn   healthChecker
	}{
		{"entry_store", s.storeHealth},
		{"result_cache", s.cacheHealth},
	}

	for _, check := range checks {
		if check.fn == nil {
			continue
		}
		if err := check.fn.Ping(ctx); err != nil {
			return c.JSON(503, map[string]any{
				"status":       "unhealthy",
				"failed_check": check.name,
				"error":        err.Error(),
			})
		}
	}

	return c.JSON(200, map[string]string{"status": "ready"})
}

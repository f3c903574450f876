package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/mindpulse/internal/analysis"
	"github.com/pscheid92/mindpulse/internal/domain"
	"github.com/pscheid92/mindpulse/internal/metrics"
)

// Service runs analyses against the entry store and fans results out to
// persistence and cache.
type Service struct {
	entries domain.EntryStore
	results domain.ResultStore
	cache   domain.ResultCache // nil when Redis is not configured
	engine  *analysis.Engine
	clock   clockwork.Clock
}

func NewService(entries domain.EntryStore, results domain.ResultStore, cache domain.ResultCache, engine *analysis.Engine, clock clockwork.Clock) *Service {
	return &Service{
		entries: entries,
		results: results,
		cache:   cache,
		engine:  engine,
		clock:   clock,
	}
}

// AnalyzeUser fetches a user's entries, runs the engine, and returns the
// report. Persistence and caching happen best-effort after a successful
// analysis: their failures are logged, not surfaced, so a flaky result
// table never hides a verdict from the caller.
func (s *Service) AnalyzeUser(ctx context.Context, userID string) (domain.AnalysisReport, error) {
	start := s.clock.Now()

	entries, err := s.entries.FetchEntries(ctx, userID)
	if err != nil {
		metrics.EntryStoreFetches.WithLabelValues("error").Inc()
		return domain.AnalysisReport{}, fmt.Errorf("failed to fetch entries for user %s: %w", userID, err)
	}
	metrics.EntryStoreFetches.WithLabelValues("success").Inc()

	result := s.engine.Analyze(entries)
	report := domain.AnalysisReport{
		AnalysisResult: result,
		UserID:         userID,
		TotalEntries:   len(entries),
		AnalyzedAt:     s.clock.Now(),
	}

	metrics.AnalysesTotal.WithLabelValues(string(result.Status), string(result.RiskLevel)).Inc()
	metrics.EntriesAnalyzed.Observe(float64(len(entries)))
	metrics.AnalysisDuration.Observe(s.clock.Since(start).Seconds())
	if result.CrisisDetected {
		metrics.CrisisDetections.Inc()
	}

	if result.Status == domain.StatusSuccess {
		if err := s.results.SaveResult(ctx, report); err != nil {
			slog.Warn("Failed to persist analysis result", "user_id", userID, "error", err)
		}
		if s.cache != nil {
			if err := s.cache.SetResult(ctx, report); err != nil {
				slog.Warn("Failed to cache analysis result", "user_id", userID, "error", err)
			}
		}
	}

	return report, nil
}

// AnalyzeAll runs an analysis for every known user. A failing user yields
// an error-status report and the batch continues; only a failing user
// listing aborts the whole run.
func (s *Service) AnalyzeAll(ctx context.Context) ([]domain.AnalysisReport, error) {
	users, err := s.entries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	reports := make([]domain.AnalysisReport, 0, len(users))
	for _, userID := range users {
		report, err := s.AnalyzeUser(ctx, userID)
		if err != nil {
			slog.Error("Batch analysis failed for user", "user_id", userID, "error", err)
			reports = append(reports, domain.AnalysisReport{
				AnalysisResult: domain.AnalysisResult{Status: domain.StatusError},
				UserID:         userID,
				AnalyzedAt:     s.clock.Now(),
			})
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ListUsers returns every user ID known to the entry store.
func (s *Service) ListUsers(ctx context.Context) ([]string, error) {
	users, err := s.entries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// LatestResult returns the most recently cached report for a user.
// Returns domain.ErrResultNotFound when no cache is configured or the
// entry has expired.
func (s *Service) LatestResult(ctx context.Context, userID string) (*domain.AnalysisReport, error) {
	if s.cache == nil {
		return nil, domain.ErrResultNotFound
	}
	return s.cache.GetResult(ctx, userID)
}

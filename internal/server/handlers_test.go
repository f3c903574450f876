package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pscheid92/mindpulse/internal/config"
	"github.com/pscheid92/mindpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockRunner struct {
	report     domain.AnalysisReport
	reports    []domain.AnalysisReport
	users      []string
	latest     *domain.AnalysisReport
	analyzeErr error
	batchErr   error
	listErr    error
	latestErr  error
	seenUserID string
}

func (m *mockRunner) AnalyzeUser(_ context.Context, userID string) (domain.AnalysisReport, error) {
	m.seenUserID = userID
	return m.report, m.analyzeErr
}

func (m *mockRunner) AnalyzeAll(context.Context) ([]domain.AnalysisReport, error) {
	return m.reports, m.batchErr
}

func (m *mockRunner) ListUsers(context.Context) ([]string, error) {
	return m.users, m.listErr
}

func (m *mockRunner) LatestResult(_ context.Context, userID string) (*domain.AnalysisReport, error) {
	m.seenUserID = userID
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	return m.latest, nil
}

type mockHealth struct {
	err error
}

func (m *mockHealth) Ping(context.Context) error { return m.err }

// --- Helpers ---

func newTestServer(t *testing.T, runner AnalysisRunner, store, cache healthChecker) *Server {
	t.Helper()
	cfg := &config.Config{Port: "8080"}
	return NewServer(cfg, runner, store, cache)
}

func doRequest(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func sampleReport(userID string) domain.AnalysisReport {
	return domain.AnalysisReport{
		AnalysisResult: domain.AnalysisResult{
			Status:            domain.StatusSuccess,
			DepressionLevel:   domain.SeverityMild,
			AnxietyLevel:      domain.SeverityNone,
			RiskLevel:         domain.RiskLow,
			NegativeDays:      3,
			TotalDaysAnalyzed: 9,
		},
		UserID:       userID,
		TotalEntries: 21,
		AnalyzedAt:   time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

// --- Analysis endpoints ---

func TestHandleAnalyzeUser(t *testing.T) {
	runner := &mockRunner{report: sampleReport("alice")}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/analyze/alice")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", runner.seenUserID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["user_id"])
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "mild", body["depression_level"])
	assert.Equal(t, "low", body["risk_level"])
	assert.Equal(t, float64(3), body["negative_days"])
	assert.Equal(t, float64(9), body["total_days_analyzed"])
	assert.Equal(t, false, body["crisis_detected"])
}

func TestHandleAnalyzeUser_StoreUnavailable(t *testing.T) {
	runner := &mockRunner{analyzeErr: domain.ErrStoreUnhealthy}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/analyze/alice")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "external", body["type"])
	assert.Equal(t, "entry store unavailable", body["error"])
}

func TestHandleAnalyzeUser_GenericFetchError(t *testing.T) {
	runner := &mockRunner{analyzeErr: errors.New("query failed")}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/analyze/alice")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleLatestResult(t *testing.T) {
	report := sampleReport("alice")
	runner := &mockRunner{latest: &report}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/results/alice")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["user_id"])
}

func TestHandleLatestResult_Miss(t *testing.T) {
	runner := &mockRunner{latestErr: domain.ErrResultNotFound}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/results/alice")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["type"])
}

func TestHandleAnalyzeAll(t *testing.T) {
	runner := &mockRunner{reports: []domain.AnalysisReport{
		sampleReport("alice"),
		sampleReport("bob"),
	}}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/api/analyze-all")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalUsersAnalyzed int                     `json:"total_users_analyzed"`
		Results            []domain.AnalysisReport `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalUsersAnalyzed)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "bob", body.Results[1].UserID)
}

func TestHandleListUsers(t *testing.T) {
	runner := &mockRunner{users: []string{"alice", "bob"}}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/api/users")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalUsers int      `json:"total_users"`
		Users      []string `json:"users"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalUsers)
	assert.Equal(t, []string{"alice", "bob"}, body.Users)
}

func TestHandleListUsers_StoreUnavailable(t *testing.T) {
	runner := &mockRunner{listErr: domain.ErrStoreUnhealthy}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/api/users")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "external", body["type"])
}

func TestHandleAnalyzeAll_ListError(t *testing.T) {
	runner := &mockRunner{batchErr: errors.New("scan failed")}
	srv := newTestServer(t, runner, nil, nil)

	rec := doRequest(srv, "/api/analyze-all")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// --- Health endpoints ---

func TestHandleRoot(t *testing.T) {
	srv := newTestServer(t, &mockRunner{}, nil, nil)

	rec := doRequest(srv, "/")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "mindpulse", body["service"])
}

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(t, &mockRunner{}, nil, nil)

	rec := doRequest(srv, "/health/live")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleReadiness(t *testing.T) {
	tests := []struct {
		name       string
		store      healthChecker
		cache      healthChecker
		wantStatus int
		wantCheck  string
	}{
		{"all healthy", &mockHealth{}, &mockHealth{}, http.StatusOK, ""},
		{"no cache configured", &mockHealth{}, nil, http.StatusOK, ""},
		{"store failing", &mockHealth{err: errors.New("dynamo timeout")}, &mockHealth{}, http.StatusServiceUnavailable, "entry_store"},
		{"cache failing", &mockHealth{}, &mockHealth{err: errors.New("redis refused")}, http.StatusServiceUnavailable, "result_cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &mockRunner{}, tt.store, tt.cache)

			rec := doRequest(srv, "/health/ready")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCheck != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCheck, body["failed_check"])
			}
		})
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t, &mockRunner{}, nil, nil)

	rec := doRequest(srv, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

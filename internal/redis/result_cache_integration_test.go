package redis

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pscheid92/mindpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var (
	testRedisURL   string
	redisContainer testcontainers.Container
)

func TestMain(m *testing.M) {
	// Parse flags to check for -short
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	redisContainer, err = tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	code := m.Run()

	if err := redisContainer.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
	}
	os.Exit(code)
}

func setupTestCache(t *testing.T, ttl time.Duration) *ResultCache {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	cache, err := NewResultCache(testRedisURL, ttl)
	require.NoError(t, err)

	// Flush all keys before each test
	require.NoError(t, cache.rdb.FlushAll(context.Background()).Err())

	t.Cleanup(func() {
		_ = cache.Close()
	})

	return cache
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

func TestResultCache_MissReturnsNotFound(t *testing.T) {
	cache := setupTestCache(t, time.Minute)

	_, err := cache.GetResult(context.Background(), "nobody")

	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestResultCache_RoundTrip(t *testing.T) {
	cache := setupTestCache(t, time.Minute)
	ctx := context.Background()
	report := sampleReport("alice")

	require.NoError(t, cache.SetResult(ctx, report))

	got, err := cache.GetResult(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, report.AnalysisResult, got.AnalysisResult)
	assert.Equal(t, report.UserID, got.UserID)
	assert.Equal(t, report.TotalEntries, got.TotalEntries)
	assert.True(t, report.AnalyzedAt.Equal(got.AnalyzedAt))
}

func TestResultCache_KeysAreNamespacedPerUser(t *testing.T) {
	cache := setupTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetResult(ctx, sampleReport("alice")))

	_, err := cache.GetResult(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestResultCache_OverwriteReplacesPrevious(t *testing.T) {
	cache := setupTestCache(t, time.Minute)
	ctx := context.Background()

	first := sampleReport("alice")
	require.NoError(t, cache.SetResult(ctx, first))

	second := first
	second.RiskLevel = domain.RiskCritical
	second.CrisisDetected = true
	require.NoError(t, cache.SetResult(ctx, second))

	got, err := cache.GetResult(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RiskCritical, got.RiskLevel)
	assert.True(t, got.CrisisDetected)
}

func TestResultCache_SetAppliesTTL(t *testing.T) {
	cache := setupTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetResult(ctx, sampleReport("alice")))

	remaining, err := cache.rdb.TTL(ctx, cacheKey("alice")).Result()
	require.NoError(t, err)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, time.Minute)
}

func TestResultCache_ExpiredEntryIsAMiss(t *testing.T) {
	cache := setupTestCache(t, 100*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.SetResult(ctx, sampleReport("alice")))
	time.Sleep(200 * time.Millisecond)

	_, err := cache.GetResult(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestResultCache_Ping(t *testing.T) {
	cache := setupTestCache(t, time.Minute)

	assert.NoError(t, cache.Ping(context.Background()))
}

func TestNewResultCache_InvalidURL(t *testing.T) {
	_, err := NewResultCache("not a url", time.Minute)
	assert.Error(t, err)
}

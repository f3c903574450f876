package domain

import "time"

// Severity is the per-condition ordinal classification.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// RiskLevel is the overall ordinal risk tier.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// AnalysisStatus distinguishes a successful analysis from the empty-input
// terminal state and caller-side failures.
type AnalysisStatus string

const (
	StatusSuccess AnalysisStatus = "success"
	StatusNoData  AnalysisStatus = "no_data"
	StatusError   AnalysisStatus = "error"
)

// AnalysisResult is the engine's verdict for one invocation.
type AnalysisResult struct {
	Status            AnalysisStatus `json:"status"`
	DepressionLevel   Severity       `json:"depression_level"`
	AnxietyLevel      Severity       `json:"anxiety_level"`
	RiskLevel         RiskLevel      `json:"risk_level"`
	NegativeDays      int            `json:"negative_days"`
	TotalDaysAnalyzed int            `json:"total_days_analyzed"`
	CrisisDetected    bool           `json:"crisis_detected"`
	Insights          []string       `json:"insights,omitempty"`
}

// AnalysisReport wraps an AnalysisResult with the request-level fields the
// service layer attaches before returning or persisting it.
type AnalysisReport struct {
	AnalysisResult
	UserID       string    `json:"user_id"`
	TotalEntries int       `json:"total_entries"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}

package analysis

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/mindpulse/internal/domain"
)

const (
	// windowDays is the trailing screening horizon, modeled on the
	// two-week window clinical questionnaires ask about.
	windowDays = 14

	dateLayout = "2006-01-02"
)

// Day-level thresholds.
const (
	negativeSentimentBelow = 0.5
	depressedDayKeywordMin = 3
	anxiousDayKeywordMin   = 2
)

// dailyBucket accumulates per-calendar-day signal.
type dailyBucket struct {
	sentiments  []int
	depKeywords int
	anxKeywords int
	suiKeywords int
}

// Engine folds dated entries into a risk verdict. It is pure given a fixed
// clock: no internal state, no I/O, safe for concurrent use across users.
type Engine struct {
	classifier domain.Classifier
	keywords   KeywordConfig
	clock      clockwork.Clock
}

func NewEngine(classifier domain.Classifier, keywords KeywordConfig, clock clockwork.Clock) *Engine {
	return &Engine{
		classifier: classifier,
		keywords:   keywords,
		clock:      clock,
	}
}

// Analyze reduces entries to a risk summary over the trailing two-week
// window ending today.
//
// Dates that fail to parse as YYYY-MM-DD resolve to today, so undated chat
// entries always count as current-day signal. Entries strictly older than
// the window are dropped. Neither condition is an error: the engine always
// returns a well-formed result.
func (e *Engine) Analyze(entries []domain.Entry) domain.AnalysisResult {
	if len(entries) == 0 {
		return domain.AnalysisResult{
			Status:          domain.StatusNoData,
			DepressionLevel: domain.SeverityNone,
			AnxietyLevel:    domain.SeverityNone,
			RiskLevel:       domain.RiskLow,
			Insights:        []string{"Not enough data"},
		}
	}

	// Sample the clock once so the window boundary is consistent for
	// every entry in this call.
	today := truncateToDay(e.clock.Now())
	windowStart := today.AddDate(0, 0, -windowDays)

	buckets := e.buildBuckets(entries, today, windowStart)

	var negativeDays, anxietyDays, suicidalDays int
	var totalDepScore, totalAnxScore int

	for _, bucket := range buckets {
		if averageSentiment(bucket.sentiments) < negativeSentimentBelow || bucket.depKeywords >= depressedDayKeywordMin {
			negativeDays++
			totalDepScore += bucket.depKeywords
		}
		if bucket.anxKeywords >= anxiousDayKeywordMin {
			anxietyDays++
			totalAnxScore += bucket.anxKeywords
		}
		if bucket.suiKeywords > 0 {
			suicidalDays++
		}
	}

	depression := classifyDepression(suicidalDays, negativeDays, totalDepScore)
	anxiety := classifyAnxiety(anxietyDays, totalAnxScore)

	return domain.AnalysisResult{
		Status:            domain.StatusSuccess,
		DepressionLevel:   depression,
		AnxietyLevel:      anxiety,
		RiskLevel:         classifyRisk(suicidalDays, depression, anxiety),
		NegativeDays:      negativeDays,
		TotalDaysAnalyzed: len(buckets),
		CrisisDetected:    suicidalDays > 0,
	}
}

// buildBuckets groups in-window entries by resolved calendar date and
// accumulates sentiment labels and keyword counts per day.
func (e *Engine) buildBuckets(entries []domain.Entry, today, windowStart time.Time) map[string]*dailyBucket {
	buckets := make(map[string]*dailyBucket)

	for _, entry := range entries {
		entryDate, err := time.Parse(dateLayout, entry.Date)
		if err != nil {
			entryDate = today
		}

		if entryDate.Before(windowStart) {
			continue
		}

		key := entryDate.Format(dateLayout)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &dailyBucket{}
			buckets[key] = bucket
		}

		bucket.sentiments = append(bucket.sentiments, e.classifier.Classify(entry.Text))
		bucket.depKeywords += e.keywords.Depression.Count(entry.Text)
		bucket.anxKeywords += e.keywords.Anxiety.Count(entry.Text)
		bucket.suiKeywords += e.keywords.Suicidal.Count(entry.Text)
	}

	return buckets
}

// averageSentiment returns the mean label of a day. An empty slice defaults
// to positive: buckets are only created with at least one entry, but the
// default must err toward wellbeing if that invariant ever breaks.
func averageSentiment(sentiments []int) float64 {
	if len(sentiments) == 0 {
		return 1
	}
	sum := 0
	for _, label := range sentiments {
		sum += label
	}
	return float64(sum) / float64(len(sentiments))
}

// classifyDepression applies the severity tiers top-down; the first match wins.
func classifyDepression(suicidalDays, negativeDays, totalDepScore int) domain.Severity {
	switch {
	case suicidalDays >= 2 || (negativeDays >= 10 && totalDepScore >= 15):
		return domain.SeveritySevere
	case negativeDays >= 7 || totalDepScore >= 10:
		return domain.SeverityModerate
	case negativeDays >= 3:
		return domain.SeverityMild
	default:
		return domain.SeverityNone
	}
}

// classifyAnxiety applies the severity tiers top-down; the first match wins.
func classifyAnxiety(anxietyDays, totalAnxScore int) domain.Severity {
	switch {
	case anxietyDays >= 10 || totalAnxScore >= 20:
		return domain.SeveritySevere
	case anxietyDays >= 7 || totalAnxScore >= 12:
		return domain.SeverityModerate
	case anxietyDays >= 3:
		return domain.SeverityMild
	default:
		return domain.SeverityNone
	}
}

// classifyRisk derives the overall tier. Any suicidal day outranks
// everything else.
func classifyRisk(suicidalDays int, depression, anxiety domain.Severity) domain.RiskLevel {
	switch {
	case suicidalDays > 0:
		return domain.RiskCritical
	case depression == domain.SeveritySevere || anxiety == domain.SeveritySevere:
		return domain.RiskHigh
	case depression == domain.SeverityModerate || anxiety == domain.SeverityModerate:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// truncateToDay drops the time-of-day component, keeping the calendar date
// in UTC so bucket keys compare cleanly with parsed entry dates.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

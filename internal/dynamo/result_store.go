package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/mindpulse/internal/domain"
)

// resultRecord is the persisted shape of one analysis report. The server
// assigns the record ID and timestamps; callers never supply them.
type resultRecord struct {
	UserID            string `dynamodbav:"user_id"`
	ResultID          string `dynamodbav:"result_id"`
	Status            string `dynamodbav:"status"`
	DepressionLevel   string `dynamodbav:"depression_level"`
	AnxietyLevel      string `dynamodbav:"anxiety_level"`
	RiskLevel         string `dynamodbav:"risk_level"`
	NegativeDays      int    `dynamodbav:"negative_days"`
	TotalDaysAnalyzed int    `dynamodbav:"total_days_analyzed"`
	CrisisDetected    bool   `dynamodbav:"crisis_detected"`
	TotalEntries      int    `dynamodbav:"total_entries"`
	AnalyzedAt        int64  `dynamodbav:"analyzed_at"`
	TTL               int64  `dynamodbav:"ttl"`
}

// ResultStore implements domain.ResultStore on a DynamoDB table keyed by
// (user_id, analyzed_at).
type ResultStore struct {
	client *dynamodb.Client
	table  string
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewResultStore(client *dynamodb.Client, table string, ttl time.Duration, clock clockwork.Clock) *ResultStore {
	return &ResultStore{
		client: client,
		table:  table,
		ttl:    ttl,
		clock:  clock,
	}
}

// SaveResult writes one report as a new item with a server-assigned result
// ID and expiry.
func (s *ResultStore) SaveResult(ctx context.Context, report domain.AnalysisReport) error {
	record := resultRecord{
		UserID:            report.UserID,
		ResultID:          uuid.NewString(),
		Status:            string(report.Status),
		DepressionLevel:   string(report.DepressionLevel),
		AnxietyLevel:      string(report.AnxietyLevel),
		RiskLevel:         string(report.RiskLevel),
		NegativeDays:      report.NegativeDays,
		TotalDaysAnalyzed: report.TotalDaysAnalyzed,
		CrisisDetected:    report.CrisisDetected,
		TotalEntries:      report.TotalEntries,
		AnalyzedAt:        report.AnalyzedAt.Unix(),
		TTL:               s.clock.Now().Add(s.ttl).Unix(),
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal result record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store analysis result: %w", err)
	}
	return nil
}

package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pscheid92/mindpulse/internal/domain"
)

const chatSenderUser = "user"

// journalRecord is a dated journal entry row.
type journalRecord struct {
	UserID string `dynamodbav:"user_id"`
	Date   string `dynamodbav:"date"`
	Text   string `dynamodbav:"text"`
}

// messageRecord is one chat message row. SentAt is a unix timestamp;
// zero means the client never attached one.
type messageRecord struct {
	UserID string `dynamodbav:"user_id"`
	SentAt int64  `dynamodbav:"sent_at"`
	Sender string `dynamodbav:"sender"`
	Text   string `dynamodbav:"text"`
}

// EntryStore implements domain.EntryStore backed by two DynamoDB tables:
// journals keyed by (user_id, date) and chat messages keyed by
// (user_id, sent_at).
type EntryStore struct {
	client        *dynamodb.Client
	journalsTable string
	messagesTable string
}

func NewEntryStore(client *dynamodb.Client, journalsTable, messagesTable string) *EntryStore {
	return &EntryStore{
		client:        client,
		journalsTable: journalsTable,
		messagesTable: messagesTable,
	}
}

// FetchEntries loads a user's journals and chat history and converts them
// into the Entry shape the engine consumes. Journal rows keep their date
// key. Chat rows resolve their timestamp to a calendar date; rows without
// one carry the placeholder date so the engine counts them as current-day
// signal. Only messages the user authored count; bot replies are skipped.
func (s *EntryStore) FetchEntries(ctx context.Context, userID string) ([]domain.Entry, error) {
	journals, err := s.queryJournals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journals: %w", err)
	}

	messages, err := s.queryMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat messages: %w", err)
	}

	entries := journalEntries(journals)
	entries = append(entries, chatEntries(messages)...)
	return entries, nil
}

func journalEntries(records []journalRecord) []domain.Entry {
	var entries []domain.Entry
	for _, record := range records {
		if record.Text == "" {
			continue
		}
		entries = append(entries, domain.Entry{
			Text:   record.Text,
			Date:   record.Date,
			Source: domain.SourceJournal,
		})
	}
	return entries
}

func chatEntries(records []messageRecord) []domain.Entry {
	var entries []domain.Entry
	for _, record := range records {
		if record.Sender != chatSenderUser || record.Text == "" {
			continue
		}
		date := domain.PlaceholderDate
		if record.SentAt > 0 {
			date = time.Unix(record.SentAt, 0).UTC().Format("2006-01-02")
		}
		entries = append(entries, domain.Entry{
			Text:   record.Text,
			Date:   date,
			Source: domain.SourceChat,
		})
	}
	return entries
}

func (s *EntryStore) queryJournals(ctx context.Context, userID string) ([]journalRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.journalsTable),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	}

	var records []journalRecord
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []journalRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal page: %w", err)
		}
		records = append(records, page...)
	}
	return records, nil
}

func (s *EntryStore) queryMessages(ctx context.Context, userID string) ([]messageRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.messagesTable),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	}

	var records []messageRecord
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []messageRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message page: %w", err)
		}
		records = append(records, page...)
	}
	return records, nil
}

// ListUsers scans both tables for distinct user IDs. Scan is acceptable
// here because the operation backs an operator-facing batch endpoint, not
// the per-user hot path.
func (s *EntryStore) ListUsers(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	for _, table := range []string{s.journalsTable, s.messagesTable} {
		input := &dynamodb.ScanInput{
			TableName:            aws.String(table),
			ProjectionExpression: aws.String("user_id"),
		}
		paginator := dynamodb.NewScanPaginator(s.client, input)
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s for users: %w", table, err)
			}
			var page []struct {
				UserID string `dynamodbav:"user_id"`
			}
			if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
				return nil, fmt.Errorf("failed to unmarshal user page: %w", err)
			}
			for _, row := range page {
				if row.UserID != "" {
					seen[row.UserID] = struct{}{}
				}
			}
		}
	}

	users := make([]string, 0, len(seen))
	for userID := range seen {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users, nil
}

// Ping verifies the journals table is reachable, for readiness checks.
func (s *EntryStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.journalsTable),
	})
	return err
}

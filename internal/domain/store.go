package domain

import "context"

// EntryStore provides read access to a user's journal and chat history,
// already converted into the Entry shape the engine consumes.
type EntryStore interface {
	FetchEntries(ctx context.Context, userID string) ([]Entry, error)
	ListUsers(ctx context.Context) ([]string, error)
}

// ResultStore persists analysis reports with a server-assigned timestamp.
type ResultStore interface {
	SaveResult(ctx context.Context, report AnalysisReport) error
}

// ResultCache holds the most recent report per user for cheap reads.
type ResultCache interface {
	GetResult(ctx context.Context, userID string) (*AnalysisReport, error)
	SetResult(ctx context.Context, report AnalysisReport) error
}

package domain

// Entry source tags. Informational only, never used for scoring.
const (
	SourceJournal = "journal"
	SourceChat    = "chat"
)

// PlaceholderDate marks chat entries without a resolvable timestamp.
// The engine treats any date that does not parse as YYYY-MM-DD as
// belonging to the day the analysis runs, so placeholder-dated entries
// still count toward current risk.
const PlaceholderDate = "Chat/Echo"

// Entry is one unit of user-authored text with an associated (possibly
// unresolved) date and source tag. Immutable once handed to the engine.
type Entry struct {
	Text   string `json:"text"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

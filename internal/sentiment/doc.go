// Package sentiment implements the binary sentiment oracle.
//
// The Oracle normalizes raw text and asks a SentimentModel for a 0/1 label.
// Two model implementations exist: LinearModel (tf-idf + linear decision
// function loaded from an exported training artifact) and VaderModel (a
// lexicon-based stand-in used when no artifact is configured).
package sentiment

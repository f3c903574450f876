// Package analysis implements the entry aggregation and classification engine.
//
// The Engine windows entries over a trailing two-week screening horizon,
// scores each calendar day from binary sentiment labels plus keyword
// heuristics, and folds the per-day flags into depression/anxiety severity
// levels and an overall risk tier.
package analysis

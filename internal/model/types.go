// Package model defines shared data structures.
package model

import "time"

// SymbolA and SymbolB are the two competing symbols in a sprint log.
// Every other code point is a no-op separator.
const (
	SymbolA = 'A'
	SymbolB = 'B'
)

// Outcome is one valid match reading of a log: a best-of-Sprints match of
// first-to-Target sprints, won by Winner.
type Outcome struct {
	Sprints int  `json:"sprints"`
	Target  int  `json:"target"`
	Winner  rune `json:"-"`
}

// WinnerString returns the winner symbol as a string, for display and storage.
func (o Outcome) WinnerString() string {
	return string(o.Winner)
}

// Analysis captures one analyzer run for the history store.
type Analysis struct {
	AnalyzedAt time.Time
	Source     string
	LogLen     int
	ValidChars int
	AChars     int
	BChars     int
	Outcomes   []Outcome
}

// AnalysisSummary summarizes a stored analysis for listing.
type AnalysisSummary struct {
	ID           int64
	AnalyzedAt   time.Time
	Source       string
	LogLen       int
	ValidChars   int
	AChars       int
	BChars       int
	OutcomeCount int
}

// HistoryConfig defines filters for history queries.
type HistoryConfig struct {
	Since *time.Time
	Last  int
}

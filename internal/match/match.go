// Package match implements the sprint match analyzer.
package match

import (
	"sort"

	"github.com/verte-zerg/sprintlog/internal/model"
)

// CountSymbols reports how many 'A' and 'B' characters log contains and
// their total. Any other code point, including lowercase and accented
// variants, is a separator and counts toward nothing.
func CountSymbols(log string) (a, b, n int) {
	for _, c := range log {
		switch c {
		case model.SymbolA:
			a++
		case model.SymbolB:
			b++
		}
	}
	return a, b, a + b
}

// Analyze enumerates every pair (s, t) under which log reads as a complete,
// exactly-terminating match: consecutive sprints each won by the first symbol
// to score t points within it, the match won by the first symbol to take s
// sprints, with the decisive s-th sprint win landing on the log's last valid
// character. Results are sorted ascending by s, then t. A log with no valid
// characters yields no results.
func Analyze(log string) []model.Outcome {
	_, _, n := CountSymbols(log)
	if n == 0 {
		return nil
	}
	var outcomes []model.Outcome
	for t := 1; t <= n; t++ {
		if o, ok := simulate(log, t); ok {
			outcomes = append(outcomes, o)
		}
	}
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].Sprints == outcomes[j].Sprints {
			return outcomes[i].Target < outcomes[j].Target
		}
		return outcomes[i].Sprints < outcomes[j].Sprints
	})
	return outcomes
}

// simulate replays the whole log for one candidate sprint target t. The
// candidate is valid only when the log divides into complete sprints all won
// by the same symbol: that symbol then clinches its s-th sprint win on the
// last valid character. A sprint taken by the other symbol means the winner's
// s-th win fell short of the log's end; a leftover partial sprint means the
// match never concluded. The scan is never cut short, so a match that would
// conclude early rejects itself here.
func simulate(log string, t int) (model.Outcome, bool) {
	var aSprint, bSprint int
	var aWins, bWins int
	for _, c := range log {
		switch c {
		case model.SymbolA:
			aSprint++
		case model.SymbolB:
			bSprint++
		default:
			continue
		}
		// Only one counter can hit t on a given character.
		if aSprint == t {
			aWins++
			aSprint, bSprint = 0, 0
		} else if bSprint == t {
			bWins++
			aSprint, bSprint = 0, 0
		}
	}
	if aSprint+bSprint != 0 {
		return model.Outcome{}, false
	}
	if aWins > 0 && bWins > 0 {
		return model.Outcome{}, false
	}
	if bWins > 0 {
		return model.Outcome{Sprints: bWins, Target: t, Winner: model.SymbolB}, true
	}
	if aWins > 0 {
		return model.Outcome{Sprints: aWins, Target: t, Winner: model.SymbolA}, true
	}
	return model.Outcome{}, false
}

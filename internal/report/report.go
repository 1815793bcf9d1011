package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/sprintlog/internal/match"
	"github.com/verte-zerg/sprintlog/internal/model"
)

// RenderOutcomes prints the outcome table for one analyzed log.
func RenderOutcomes(w io.Writer, log string, outcomes []model.Outcome) error {
	a, b, n := match.CountSymbols(log)
	if _, err := fmt.Fprintf(w, "Characters: %d total, %d valid (A: %d, B: %d)\n", len([]rune(log)), n, a, b); err != nil {
		return err
	}
	if len(outcomes) == 0 {
		_, err := fmt.Fprintln(w, "No complete matches.")
		return err
	}
	headers := []string{"Sprints (s)", "Target (t)", "Winner"}
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, []string{
			strconv.Itoa(o.Sprints),
			strconv.Itoa(o.Target),
			o.WinnerString(),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type jsonOutcome struct {
	Sprints int    `json:"sprints"`
	Target  int    `json:"target"`
	Winner  string `json:"winner"`
}

// RenderOutcomesJSON prints the outcomes as a JSON array for scripting.
// An empty result renders as an empty array, not null.
func RenderOutcomesJSON(w io.Writer, outcomes []model.Outcome) error {
	out := make([]jsonOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, jsonOutcome{
			Sprints: o.Sprints,
			Target:  o.Target,
			Winner:  o.WinnerString(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// RenderHistory prints a table of stored analyses.
func RenderHistory(w io.Writer, summaries []model.AnalysisSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No analyses recorded.")
		return err
	}
	headers := []string{"ID", "Analyzed At", "Source", "Length", "Valid", "A", "B", "Matches"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.AnalyzedAt.Local().Format("2006-01-02 15:04:05"),
			s.Source,
			strconv.Itoa(s.LogLen),
			strconv.Itoa(s.ValidChars),
			strconv.Itoa(s.AChars),
			strconv.Itoa(s.BChars),
			strconv.Itoa(s.OutcomeCount),
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistorySummary prints aggregate counts and a valid-char trend for the
// listed analyses. Winner totals count outcomes across all of them.
func RenderHistorySummary(w io.Writer, summaries []model.AnalysisSummary, winnerTotals map[string]int) error {
	if len(summaries) == 0 {
		return nil
	}
	matched := 0
	for _, s := range summaries {
		if s.OutcomeCount > 0 {
			matched++
		}
	}
	if _, err := fmt.Fprintf(w, "Analyses: %d (%d with complete matches)\n", len(summaries), matched); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Outcome winners: A: %d, B: %d\n",
		winnerTotals[string(rune(model.SymbolA))], winnerTotals[string(rune(model.SymbolB))]); err != nil {
		return err
	}
	values := make([]float64, len(summaries))
	for i, s := range summaries {
		values[i] = float64(s.ValidChars)
	}
	if spark := Sparkline(fitToWidth(values, sparkWidth())); spark != "" {
		if _, err := fmt.Fprintf(w, "Valid chars: %s\n", spark); err != nil {
			return err
		}
	}
	return nil
}

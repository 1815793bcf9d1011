package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/sprintlog/internal/model"
)

func TestRenderOutcomes(t *testing.T) {
	var buf bytes.Buffer
	outcomes := []model.Outcome{
		{Sprints: 1, Target: 3, Winner: 'B'},
	}
	if err := RenderOutcomes(&buf, "AABBB", outcomes); err != nil {
		t.Fatalf("render outcomes: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Characters: 5 total, 5 valid (A: 2, B: 3)") {
		t.Fatalf("missing character summary in output:\n%s", out)
	}
	if !strings.Contains(out, "Sprints (s)") || !strings.Contains(out, "Winner") {
		t.Fatalf("missing table header in output:\n%s", out)
	}
	if !strings.Contains(out, "B") {
		t.Fatalf("missing winner row in output:\n%s", out)
	}
}

func TestRenderOutcomesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderOutcomes(&buf, "AAAB", nil); err != nil {
		t.Fatalf("render outcomes: %v", err)
	}
	if !strings.Contains(buf.String(), "No complete matches.") {
		t.Fatalf("expected empty-result message, got:\n%s", buf.String())
	}
}

func TestRenderOutcomesJSON(t *testing.T) {
	var buf bytes.Buffer
	outcomes := []model.Outcome{
		{Sprints: 1, Target: 4, Winner: 'A'},
		{Sprints: 2, Target: 2, Winner: 'A'},
	}
	if err := RenderOutcomesJSON(&buf, outcomes); err != nil {
		t.Fatalf("render json: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0]["winner"] != "A" || decoded[0]["sprints"] != float64(1) || decoded[0]["target"] != float64(4) {
		t.Fatalf("unexpected first entry: %v", decoded[0])
	}
}

func TestRenderOutcomesJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderOutcomesJSON(&buf, nil); err != nil {
		t.Fatalf("render json: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	summaries := []model.AnalysisSummary{
		{
			ID:           1,
			AnalyzedAt:   time.Unix(0, 0),
			Source:       "first.log",
			LogLen:       5,
			ValidChars:   5,
			AChars:       2,
			BChars:       3,
			OutcomeCount: 1,
		},
	}
	if err := RenderHistory(&buf, summaries); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "first.log") || !strings.Contains(out, "Analyzed At") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if !strings.Contains(buf.String(), "No analyses recorded.") {
		t.Fatalf("expected empty-history message, got:\n%s", buf.String())
	}
}

func TestRenderHistorySummary(t *testing.T) {
	var buf bytes.Buffer
	summaries := []model.AnalysisSummary{
		{ID: 1, ValidChars: 5, OutcomeCount: 1},
		{ID: 2, ValidChars: 4, OutcomeCount: 3},
		{ID: 3, ValidChars: 2},
	}
	totals := map[string]int{"A": 3, "B": 1}
	if err := RenderHistorySummary(&buf, summaries, totals); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Analyses: 3 (2 with complete matches)") {
		t.Fatalf("missing analysis count:\n%s", out)
	}
	if !strings.Contains(out, "Outcome winners: A: 3, B: 1") {
		t.Fatalf("missing winner totals:\n%s", out)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Sprints (s)", "Target (t)", "Winner"}
	rows := [][]string{
		{"1", "12", "A"},
		{"12", "1", "A"},
	}
	rightAlign := map[int]bool{0: true, 1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Sprints (s) Target (t) Winner" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "          1         12 A     " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "         12          1 A     " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	flat := Sparkline([]float64{3, 3, 3})
	if len(flat) != 3 {
		t.Fatalf("expected 3 chars, got %q", flat)
	}
	ramp := Sparkline([]float64{0, 5, 10})
	if len(ramp) != 3 {
		t.Fatalf("expected 3 chars, got %q", ramp)
	}
	if ramp[0] != sparkChars[0] || ramp[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected full range in %q", ramp)
	}
}

func TestFitToWidth(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := fitToWidth(values, 3)
	if len(got) != 3 || got[0] != 3 {
		t.Fatalf("unexpected fit result: %v", got)
	}
	if len(fitToWidth(values, 10)) != 5 {
		t.Fatalf("expected untouched series when it fits")
	}
	if len(fitToWidth(values, 0)) != 5 {
		t.Fatalf("expected untouched series for non-positive width")
	}
}

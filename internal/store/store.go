// Package store handles SQLite persistence of analysis history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/sprintlog/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for analysis history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY,
			analyzed_at TEXT NOT NULL,
			source TEXT NOT NULL,
			log_len INTEGER NOT NULL,
			valid_chars INTEGER NOT NULL,
			a_chars INTEGER NOT NULL,
			b_chars INTEGER NOT NULL,
			outcome_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS analysis_outcomes (
			analysis_id INTEGER NOT NULL,
			sprints INTEGER NOT NULL,
			target INTEGER NOT NULL,
			winner TEXT NOT NULL,
			PRIMARY KEY (analysis_id, sprints, target)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_outcomes_winner ON analysis_outcomes(winner);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAnalysis stores a completed analysis and its outcomes.
func (s *Store) InsertAnalysis(ctx context.Context, analysis model.Analysis) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO analyses (analyzed_at, source, log_len, valid_chars, a_chars, b_chars, outcome_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		analysis.AnalyzedAt.Format(time.RFC3339Nano),
		analysis.Source,
		analysis.LogLen,
		analysis.ValidChars,
		analysis.AChars,
		analysis.BChars,
		len(analysis.Outcomes),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(analysis.Outcomes) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO analysis_outcomes (analysis_id, sprints, target, winner)
			 VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, o := range analysis.Outcomes {
			if _, err := stmt.ExecContext(ctx, id, o.Sprints, o.Target, o.WinnerString()); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListAnalyses returns stored analyses filtered by history config, oldest first.
func (s *Store) ListAnalyses(ctx context.Context, cfg model.HistoryConfig) ([]model.AnalysisSummary, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "analyzed_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	// LIMIT -1 disables the window so one query serves both paths.
	limit := cfg.Last
	if limit <= 0 {
		limit = -1
	}
	query := fmt.Sprintf(`SELECT id, analyzed_at, source, log_len, valid_chars, a_chars, b_chars, outcome_count
		FROM (
			SELECT id, analyzed_at, source, log_len, valid_chars, a_chars, b_chars, outcome_count
			FROM analyses
			WHERE %s
			ORDER BY analyzed_at DESC, id DESC
			LIMIT ?
		)
		ORDER BY analyzed_at ASC, id ASC`, strings.Join(clauses, " AND "))
	args = append(args, limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var summaries []model.AnalysisSummary
	for rows.Next() {
		var summary model.AnalysisSummary
		var analyzedAt string
		if err := rows.Scan(&summary.ID, &analyzedAt, &summary.Source, &summary.LogLen,
			&summary.ValidChars, &summary.AChars, &summary.BChars, &summary.OutcomeCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, analyzedAt)
		if err != nil {
			return nil, err
		}
		summary.AnalyzedAt = parsed
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListOutcomes returns the stored outcomes of one analysis sorted by (s, t).
func (s *Store) ListOutcomes(ctx context.Context, analysisID int64) ([]model.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sprints, target, winner FROM analysis_outcomes
		 WHERE analysis_id = ?
		 ORDER BY sprints ASC, target ASC`, analysisID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var outcomes []model.Outcome
	for rows.Next() {
		var o model.Outcome
		var winner string
		if err := rows.Scan(&o.Sprints, &o.Target, &winner); err != nil {
			return nil, err
		}
		runes := []rune(winner)
		if len(runes) != 1 {
			return nil, fmt.Errorf("invalid winner %q for analysis %d", winner, analysisID)
		}
		o.Winner = runes[0]
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// WinnerTotals aggregates stored outcome winners across the filtered analyses.
func (s *Store) WinnerTotals(ctx context.Context, cfg model.HistoryConfig) (map[string]int, error) {
	summaries, err := s.ListAnalyses(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return map[string]int{}, nil
	}
	placeholders := make([]string, len(summaries))
	args := make([]any, len(summaries))
	for i, summary := range summaries {
		placeholders[i] = "?"
		args[i] = summary.ID
	}
	query := fmt.Sprintf(`SELECT winner, COUNT(*) FROM analysis_outcomes
		WHERE analysis_id IN (%s)
		GROUP BY winner`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	totals := map[string]int{}
	for rows.Next() {
		var winner string
		var count int
		if err := rows.Scan(&winner, &count); err != nil {
			return nil, err
		}
		totals[winner] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}

// Package main provides the CLI entrypoint for sprintlog.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sprintlog/internal/config"
	"github.com/verte-zerg/sprintlog/internal/histui"
	"github.com/verte-zerg/sprintlog/internal/logfile"
	"github.com/verte-zerg/sprintlog/internal/match"
	"github.com/verte-zerg/sprintlog/internal/model"
	"github.com/verte-zerg/sprintlog/internal/report"
	"github.com/verte-zerg/sprintlog/internal/store"
)

const (
	defaultHistoryLast = 50
)

var (
	analyzeFile   string
	analyzeJSON   bool
	analyzeNoSave bool

	historySince string
	historyLast  int
	historyPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sprintlog [LOG]",
		Short: "Sprint match log analyzer",
		Long: "sprintlog enumerates every (s, t) pair under which a log of 'A' and 'B'\n" +
			"characters reads as a complete best-of-s match of first-to-t sprints.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	rootCmd.Flags().StringVar(&analyzeFile, "file", "", "read the log from a file")
	rootCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print outcomes as JSON")
	rootCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "do not record the analysis in history")

	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "json", &analyzeJSON, fileCfg.Output.JSON)
	applyBoolConfig(cmd, "no-save", &analyzeNoSave, fileCfg.Output.NoSave)

	log, source, err := acquireLog(cmd, args)
	if err != nil {
		return err
	}

	outcomes := match.Analyze(log)

	out := cmd.OutOrStdout()
	if analyzeJSON {
		if err := report.RenderOutcomesJSON(out, outcomes); err != nil {
			return fmt.Errorf("failed to render outcomes: %w", err)
		}
	} else {
		if err := report.RenderOutcomes(out, log, outcomes); err != nil {
			return fmt.Errorf("failed to render outcomes: %w", err)
		}
	}

	if analyzeNoSave {
		return nil
	}
	return saveAnalysis(log, source, outcomes)
}

func acquireLog(cmd *cobra.Command, args []string) (log, source string, err error) {
	if len(args) == 1 && analyzeFile != "" {
		return "", "", fmt.Errorf("pass the log as an argument or via --file, not both")
	}
	switch {
	case len(args) == 1:
		return args[0], "inline", nil
	case analyzeFile != "":
		log, err := logfile.Read(analyzeFile)
		if err != nil {
			return "", "", fmt.Errorf("failed to read log file: %w", err)
		}
		return log, analyzeFile, nil
	default:
		log, err := logfile.ReadStdin(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return log, "stdin", nil
	}
}

func saveAnalysis(log, source string, outcomes []model.Outcome) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	a, b, n := match.CountSymbols(log)
	analysis := model.Analysis{
		AnalyzedAt: time.Now(),
		Source:     source,
		LogLen:     len([]rune(log)),
		ValidChars: n,
		AChars:     a,
		BChars:     b,
		Outcomes:   outcomes,
	}
	if _, err := st.InsertAnalysis(context.Background(), analysis); err != nil {
		return fmt.Errorf("failed to record analysis: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N analyses")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print tables instead of the interactive browser")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	applyBoolConfig(cmd, "plain", &historyPlain, fileCfg.History.Plain)

	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.HistoryConfig{
		Since: sinceTime,
		Last:  historyLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyPlain {
		return renderPlainHistory(cmd, st, cfg)
	}

	model := histui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func renderPlainHistory(cmd *cobra.Command, st *store.Store, cfg model.HistoryConfig) error {
	ctx := context.Background()
	summaries, err := st.ListAnalyses(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}
	totals, err := st.WinnerTotals(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load winner totals: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := report.RenderHistorySummary(out, summaries, totals); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := report.RenderHistory(out, summaries); err != nil {
		return fmt.Errorf("failed to render history: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sprintlog configuration
# Uncomment a value to enable it. CLI flags override config values.

[output]
# json = false            # Print outcomes as JSON
# no-save = false         # Do not record analyses in history

[history]
# last = %d               # Limit listings to last N analyses
# plain = false           # Print tables instead of the interactive browser
`,
		defaultHistoryLast,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

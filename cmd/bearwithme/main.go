// Package main provides the CLI entrypoint for bearwithme.
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

	"github.com/alice-yql/bearwithme/internal/config"
	"github.com/alice-yql/bearwithme/internal/deck"
	"github.com/alice-yql/bearwithme/internal/libraryui"
	"github.com/alice-yql/bearwithme/internal/model"
	"github.com/alice-yql/bearwithme/internal/session"
	"github.com/alice-yql/bearwithme/internal/stats"
	"github.com/alice-yql/bearwithme/internal/store"
	"github.com/alice-yql/bearwithme/internal/tui"
)

const (
	defaultTickMs           = 120
	defaultShowBreakdown    = true
	defaultStrugglingFactor = 2.0
)

var (
	practiceDeck             string
	practiceTickMs           int
	practiceShowBreakdown    bool
	practiceFocusStruggling  bool
	practiceStrugglingFactor float64

	statsSince string
	statsLast  int
	statsWord  string

	importForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bearwithme",
		Short:         "TUI word practice timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceDeck, "deck", "", "deck file to seed an empty library")
	rootCmd.Flags().IntVar(&practiceTickMs, "tick-ms", defaultTickMs, "timer refresh interval in milliseconds")
	rootCmd.Flags().BoolVar(&practiceShowBreakdown, "breakdown", defaultShowBreakdown, "show the phoneme breakdown under the word")
	rootCmd.Flags().BoolVar(&practiceFocusStruggling, "focus-struggling", false, "bias word order toward struggling words")
	rootCmd.Flags().Float64Var(&practiceStrugglingFactor, "struggling-factor", defaultStrugglingFactor, "weight factor for struggling words")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLibraryCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "deck", &practiceDeck, fileCfg.Practice.Deck)
	applyIntConfig(cmd, "tick-ms", &practiceTickMs, fileCfg.Practice.TickMs)
	applyBoolConfig(cmd, "breakdown", &practiceShowBreakdown, fileCfg.Practice.ShowBreakdown)
	applyBoolConfig(cmd, "focus-struggling", &practiceFocusStruggling, fileCfg.Practice.FocusStruggling)
	applyFloatConfig(cmd, "struggling-factor", &practiceStrugglingFactor, fileCfg.Practice.StrugglingFactor)

	cfg := model.Config{
		DeckPath:         practiceDeck,
		TickMs:           practiceTickMs,
		ShowBreakdown:    practiceShowBreakdown,
		FocusStruggling:  practiceFocusStruggling,
		StrugglingFactor: practiceStrugglingFactor,
	}

	if err := validateConfig(cfg); err != nil {
		return err
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

	ctx := context.Background()
	words, err := loadOrSeedWords(ctx, st, cfg.DeckPath)
	if err != nil {
		return err
	}

	if err := importLegacyDurations(ctx, st, words); err != nil {
		logErrf("legacy durations not imported: %v\n", err)
	}

	if cfg.FocusStruggling {
		words = deck.NewOrderer().FocusStruggling(words, cfg.StrugglingFactor)
	}

	durations, err := st.LoadDurations(ctx, words)
	if err != nil {
		return fmt.Errorf("failed to load durations: %w", err)
	}

	tracker := session.NewWithDurations(durations, time.Now)
	practice := tui.NewModel(cfg, st, deck.New(words), tracker)
	program := tea.NewProgram(practice, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadOrSeedWords returns the stored word list, seeding an empty store
// from the configured deck file, the default deck file if one exists,
// or the builtin starter words.
func loadOrSeedWords(ctx context.Context, st *store.Store, deckPath string) ([]model.Word, error) {
	words, err := st.LoadWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}
	if len(words) > 0 {
		return words, nil
	}
	if deckPath == "" {
		if _, err := os.Stat(config.DefaultDeckPath()); err == nil {
			deckPath = config.DefaultDeckPath()
		}
	}
	if deckPath != "" {
		words, err = deck.LoadFile(deckPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load deck file %s: %w", deckPath, err)
		}
	} else {
		words = deck.Seed()
	}
	if err := st.SaveWords(ctx, words); err != nil {
		return nil, fmt.Errorf("failed to save words: %w", err)
	}
	return words, nil
}

// importLegacyDurations pulls timings out of the old JSON file the
// first time the store has no duration rows. Errors are diagnostics
// only; practice starts from zeros either way.
func importLegacyDurations(ctx context.Context, st *store.Store, words []model.Word) error {
	has, err := st.HasDurations(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	durations, err := store.LoadLegacyDurations(config.DefaultLegacyDurationsPath(), len(words))
	if err != nil {
		return err
	}
	return st.SaveDurations(ctx, words, durations)
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

func newLibraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "Manage the word library",
		Args:  cobra.NoArgs,
		RunE:  runLibraryCmd,
	}
}

func runLibraryCmd(_ *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	words, err := loadOrSeedWords(ctx, st, "")
	if err != nil {
		return err
	}

	library := libraryui.NewModel(st, deck.New(words))
	program := tea.NewProgram(library, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run library TUI: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N practice entries")
	cmd.Flags().StringVar(&statsWord, "word", "", "word filter")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Since: sinceTime,
		Last:  statsLast,
		Word:  statsWord,
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

	ctx := context.Background()
	out := cmd.OutOrStdout()

	aggs, err := st.ListWordAggregates(ctx, cfg.Word)
	if err != nil {
		return fmt.Errorf("failed to load word stats: %w", err)
	}
	if err := stats.RenderSummary(out, aggs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderWordTable(out, aggs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	records, err := st.ListPractice(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load practice log: %w", err)
	}
	days := stats.DayTotals(records)
	sparkWidth := stats.TerminalWidth() - 11
	if err := stats.RenderDaily(out, days, sparkWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List stored words",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.AddCommand(newImportCmd())
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	words, err := st.LoadWords(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}
	for _, w := range words {
		line := w.Text
		if w.Breakdown != "" {
			line = fmt.Sprintf("%s|%s", w.Text, w.Breakdown)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from a deck file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().BoolVar(&importForce, "force", false, "replace the stored words instead of appending")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	imported, err := deck.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load deck file %s: %w", args[0], err)
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

	ctx := context.Background()
	var words []model.Word
	if importForce {
		words = imported
	} else {
		existing, err := st.LoadWords(ctx)
		if err != nil {
			return fmt.Errorf("failed to load words: %w", err)
		}
		d := deck.New(existing)
		added := 0
		for _, w := range imported {
			if _, err := d.Add(w.Text, w.Breakdown); err == nil {
				added++
			}
		}
		words = d.Words()
		logErrf("Imported %d of %d words\n", added, len(imported))
	}
	if err := st.SaveWords(ctx, words); err != nil {
		return fmt.Errorf("failed to save words: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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
	return fmt.Sprintf(`# bearwithme configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# deck = ""                 # Deck file to seed an empty library
# tick-ms = %d             # Timer refresh interval in milliseconds
# show-breakdown = %t    # Show the phoneme breakdown under the word
# focus-struggling = false  # Bias word order toward struggling words
# struggling-factor = %.1f  # Weight factor for struggling words
`,
		defaultTickMs,
		defaultShowBreakdown,
		defaultStrugglingFactor,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.TickMs < 50 || cfg.TickMs > 1000 {
		return fmt.Errorf("--tick-ms must be between 50 and 1000")
	}
	if cfg.StrugglingFactor < 0 {
		return fmt.Errorf("--struggling-factor must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

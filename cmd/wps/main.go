// Package main provides the CLI entrypoint for wps.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wps/internal/config"
	"github.com/verte-zerg/wps/internal/corpus"
	"github.com/verte-zerg/wps/internal/generator"
	"github.com/verte-zerg/wps/internal/log"
	"github.com/verte-zerg/wps/internal/model"
	"github.com/verte-zerg/wps/internal/session"
	"github.com/verte-zerg/wps/internal/stats"
	"github.com/verte-zerg/wps/internal/store"
	"github.com/verte-zerg/wps/internal/tui"
)

const (
	defaultLogLevel   = "info"
	defaultSparkWidth = 20
	maxSparkWidth     = 60
)

var (
	practiceText        string
	practiceCountdown   int
	practicePlaceholder string
	practiceSummary     bool
	logFile             string
	logLevel            string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wps",
		Short:         "Timed typing test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceText, "text", corpus.DefaultPath, "file with one practice text per line")
	flags.IntVar(&practiceCountdown, "countdown", session.DefaultCountdown, "seconds between rounds")
	flags.StringVar(&practicePlaceholder, "placeholder", string(session.DefaultPlaceholder), "glyph shown for spaces")
	flags.BoolVar(&practiceSummary, "summary", true, "print a summary after exit")
	flags.StringVar(&logFile, "log-file", "", "diagnostics log path (default: $XDG_STATE_HOME/wps/wps.log)")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "diagnostics log level")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLinesCmd())
	rootCmd.AddCommand(newGUICmd())

	return rootCmd
}

// practiceSession bundles what both front ends need for a run.
type practiceSession struct {
	cfg   model.Config
	store *store.Store
	ctrl  *session.Controller
}

func (s *practiceSession) Close() {
	if err := s.store.Close(); err != nil {
		log.Errorf("failed to close round log: %v", err)
	}
	log.Close()
}

func startSession(cmd *cobra.Command, frontend string) (*practiceSession, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := log.Init(cfg.LogPath, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	c := corpus.Load(cfg.TextPath)
	if c.Fallback() {
		log.Warnf("using fallback text: %v", c.Err())
	}
	log.SessionStart(cfg, c.Len(), frontend)

	st, err := store.Open(store.MemoryPath)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open round log: %w", err)
	}

	ctrl := session.New(session.Options{
		Next:        generator.New().Source(c.Lines()),
		Placeholder: cfg.Placeholder,
		Countdown:   cfg.Countdown,
	})
	return &practiceSession{cfg: cfg, store: st, ctrl: ctrl}, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	s, err := startSession(cmd, "tui")
	if err != nil {
		return err
	}
	defer s.Close()

	program := tea.NewProgram(tui.NewModel(s.ctrl, s.store), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return printSummary(cmd, s)
}

func printSummary(cmd *cobra.Command, s *practiceSession) error {
	if !s.cfg.Summary {
		return nil
	}
	report, err := stats.BuildReport(context.Background(), s.store, 0)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}
	if len(report.Rounds) == 0 {
		return nil
	}
	if err := report.Render(cmd.OutOrStdout(), sparkWidth()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func sparkWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultSparkWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= len("Trend: ") {
		return defaultSparkWidth
	}
	return min(width-len("Trend: "), maxSparkWidth)
}

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Run the typing test in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := startSession(cmd, "gui")
			if err != nil {
				return err
			}
			defer s.Close()
			if err := runGUI(s); err != nil {
				return err
			}
			return printSummary(cmd, s)
		},
	}
}

func newLinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines",
		Short: "Print the practice lines that would be used",
		Args:  cobra.NoArgs,
		RunE:  runLinesCmd,
	}
}

func runLinesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	lines, err := corpus.LoadLines(cfg.TextPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.TextPath, err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveConfig merges the config file under the flags. A flag set on the
// command line always wins.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "text", &practiceText, fileCfg.Practice.Text)
	applyConfig(cmd, "countdown", &practiceCountdown, fileCfg.Practice.Countdown)
	applyConfig(cmd, "placeholder", &practicePlaceholder, fileCfg.Practice.Placeholder)
	applyConfig(cmd, "summary", &practiceSummary, fileCfg.Practice.Summary)
	applyConfig(cmd, "log-file", &logFile, fileCfg.Log.Path)
	applyConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	if err := validateFlags(); err != nil {
		return model.Config{}, err
	}
	placeholder, _ := utf8.DecodeRuneInString(practicePlaceholder)
	logPath := logFile
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	return model.Config{
		TextPath:    practiceText,
		Countdown:   practiceCountdown,
		Placeholder: placeholder,
		LogPath:     logPath,
		LogLevel:    logLevel,
		Summary:     practiceSummary,
	}, nil
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateFlags() error {
	if practiceCountdown <= 0 {
		return errors.New("--countdown must be > 0")
	}
	if utf8.RuneCountInString(practicePlaceholder) != 1 || practicePlaceholder == " " {
		return fmt.Errorf("--placeholder must be a single non-space character, got %q", practicePlaceholder)
	}
	if strings.TrimSpace(practiceText) == "" {
		return errors.New("--text must not be empty")
	}
	if _, err := log.ParseLevel(logLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wps configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# text = %q          # File with one practice text per line
# countdown = %d            # Seconds between rounds
# placeholder = %q         # Glyph shown for spaces
# summary = true           # Print a summary after exit

[log]
# path = %q
# level = %q
`,
		corpus.DefaultPath,
		session.DefaultCountdown,
		string(session.DefaultPlaceholder),
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

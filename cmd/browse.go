package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/arcanaland/grimoire/internal/builtin"
	"github.com/arcanaland/grimoire/internal/config"
	"github.com/arcanaland/grimoire/internal/grimoire"
	"github.com/arcanaland/grimoire/internal/source"
	"github.com/arcanaland/grimoire/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [grimoire]",
	Short: "Browse a grimoire's spells in an interactive card view",
	Long: `Browse opens an interactive card browser for a grimoire. Each spell is
shown as a card with a short preview; expand a card to read the full
template, or copy it straight to the clipboard.

The argument may be a library name, a local directory, or an HTTP URL.
With no argument the configured default grimoire is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionLogger, err := newSessionLogger()
		if err != nil {
			return fmt.Errorf("error opening session log: %v", err)
		}
		defer func() { _ = sessionLogger.Sync() }()

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			sessionLogger.Debug("stdout is not a terminal, nothing to do")
			return nil
		}

		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		target, err := resolveTarget(name)
		if err != nil {
			return err
		}

		src := source.ForTarget(target)
		g, err := grimoire.Load(cmd.Context(), src)
		if err != nil {
			return fmt.Errorf("error loading grimoire: %v", err)
		}

		sessionLogger.Info("browse session started",
			zap.String("grimoire", g.Name),
			zap.String("target", target),
			zap.Int("spells", len(g.Spells)))

		p := tea.NewProgram(
			tui.NewModel(g, src, sessionLogger),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running browser: %v", err)
		}
		return nil
	},
}

// newSessionLogger builds a logger that writes to the state-dir log file,
// keeping the terminal free for the card browser.
func newSessionLogger() (*zap.Logger, error) {
	logPath := config.GetLogFilePath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// resolveTarget turns a grimoire name into something source.ForTarget accepts.
// An empty name means the configured default. The builtin starter grimoire is
// installed on first use so a fresh machine has something to browse.
func resolveTarget(name string) (string, error) {
	if name == "" {
		def, err := config.GetDefaultGrimoire()
		if err != nil {
			return "", fmt.Errorf("error reading config: %v", err)
		}
		name = def
	}

	target, err := config.GetGrimoireTarget(name)
	if err == nil {
		return target, nil
	}
	if name != builtin.Name {
		return "", err
	}

	dest := filepath.Join(config.GetLibraryPath(), builtin.Name)
	if installErr := builtin.Install(dest); installErr != nil {
		return "", fmt.Errorf("error installing starter grimoire: %v", installErr)
	}
	return dest, nil
}

func init() {
	RootCmd.AddCommand(browseCmd)
}

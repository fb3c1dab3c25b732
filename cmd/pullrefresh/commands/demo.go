package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/agiangrant/pullrefresh/internal/tui"
)

// Demo flag names, also readable from PULLREFRESH_REFRESH_FOR and
// PULLREFRESH_LINES.
const (
	FlagRefreshFor = "refresh-for"
	FlagLines      = "lines"
)

// ErrNotTerminal is returned when the demo is started without a terminal.
var ErrNotTerminal = errors.New("demo needs an interactive terminal")

// demoSettings are the demo-only knobs.
type demoSettings struct {
	RefreshFor time.Duration `mapstructure:"refresh-for"`
	Lines      int           `mapstructure:"lines"`
}

// decodeDemoSettings reads the demo knobs from flags or environment. Env
// values arrive as strings, so durations and ints go through decode hooks.
func (a *app) decodeDemoSettings() (demoSettings, error) {
	var s demoSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           &s,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return s, err
	}
	raw := map[string]interface{}{
		FlagRefreshFor: a.v.Get(FlagRefreshFor),
		FlagLines:      a.v.Get(FlagLines),
	}
	if err := decoder.Decode(raw); err != nil {
		return s, fmt.Errorf("demo settings: %w", err)
	}
	return s, nil
}

func newDemoCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive terminal demo",
		Long: `Demo mounts a controller over a scrollable list in the terminal.

Drag with the mouse to pull, use the wheel to scroll once the list has been
dragged away from the top, press r for a caller-driven refresh and q to quit.
Logs go to a rotating file so they do not draw over the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return ErrNotTerminal
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			settings, err := a.decodeDemoSettings()
			if err != nil {
				return err
			}
			level, err := parseLevel(a.v.GetString(FlagLogLevel))
			if err != nil {
				return err
			}
			fl := newFileLogger(a.v.GetString(FlagLogFile), level)
			defer func() { _ = fl.Close() }()

			model, err := tui.New(tui.Options{
				Config:     cfg,
				RefreshFor: settings.RefreshFor,
				Lines:      settings.Lines,
				Logger:     fl.Logger,
			})
			if err != nil {
				return err
			}

			eff := model.Controller().Config()
			fl.Logger.Info("demo started",
				"open_height", eff.OpenHeight,
				"pull_threshold", eff.PullThreshold,
				"damping_factor", eff.DampingFactor,
				"dead_zone", eff.DeadZone,
				"refresh_for", settings.RefreshFor,
			)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("demo: %w", err)
			}
			fl.Logger.Info("demo finished", "refreshes", model.Refreshes())
			return nil
		},
	}
	cmd.Flags().Duration(FlagRefreshFor, 1500*time.Millisecond, "How long a simulated fetch takes")
	cmd.Flags().Int(FlagLines, 50, "Number of list rows")
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(f.Name, f)
	})
	return cmd
}

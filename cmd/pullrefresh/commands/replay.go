package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/agiangrant/pullrefresh/internal/script"
)

// ErrExpectationFailed is returned when a replayed script has failed
// expectations.
var ErrExpectationFailed = errors.New("expectations failed")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func newReplayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>...",
		Short: "Replay gesture scripts against a simulated scroll view",
		Long: `Replay runs each YAML gesture script against a fresh controller on a
virtual clock and prints the state after every step. The command fails if
any expect block does not hold.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := a.logger()
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			failed := 0
			for _, path := range args {
				s, err := script.Load(path)
				if err != nil {
					return err
				}
				trace, err := script.Run(s, cfg, logger)
				if err != nil {
					return err
				}
				printTrace(a.stdout, trace)
				if !trace.Passed() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scripts: %w", failed, len(args), ErrExpectationFailed)
			}
			return nil
		},
	}
}

func printTrace(w io.Writer, trace *script.Trace) {
	fmt.Fprintln(w, titleStyle.Render(trace.Name))
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("  %8s  %-28s %-11s %-7s %6s %7s  %s",
		"t", "step", "state", "lock", "pull", "scroll", "note")))
	for _, e := range trace.Entries {
		note := ""
		if e.Note != "" {
			note = noteStyle.Render(e.Note)
		}
		fmt.Fprintf(w, "  %8s  %-28s %-11s %-7s %6.1f %7.1f  %s\n",
			e.At, e.Step, e.State, e.Lock, e.PullHeight, e.ScrollY, note)
	}
	fmt.Fprintf(w, "  refresh calls=%d play=%d reset=%d\n", trace.RefreshCalls, trace.Plays, trace.Resets)

	if trace.Passed() {
		fmt.Fprintln(w, "  "+passStyle.Render("PASS"))
	} else {
		fmt.Fprintln(w, "  "+failStyle.Render("FAIL"))
		for _, f := range trace.Failures {
			fmt.Fprintln(w, "    "+strings.TrimSpace(f))
		}
	}
	fmt.Fprintln(w)
}

// Package commands implements the pullrefresh CLI.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agiangrant/pullrefresh"
)

// Flag names. Each is also readable from PULLREFRESH_<NAME> with dashes as
// underscores.
const (
	FlagConfig     = "config"
	FlagLogLevel   = "log-level"
	FlagLogFile    = "log-file"
	FlagThreshold  = "threshold"
	FlagOpenHeight = "open-height"
)

// DefaultConfigFile is looked up from the working directory upwards when
// --config is not given.
const DefaultConfigFile = "pullrefresh.toml"

// app carries what every subcommand needs.
type app struct {
	v       *viper.Viper
	version string
	stdout  io.Writer
	stderr  io.Writer
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	return newApp(version).command()
}

func newApp(version string) *app {
	a := &app{
		v:       viper.New(),
		version: version,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	a.v.SetEnvPrefix("PULLREFRESH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	return a
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "pullrefresh",
		Short: "Pull-to-refresh gesture controller tools",
		Long: `pullrefresh drives a pull-to-refresh controller outside a device.

It replays recorded gesture scripts on a virtual clock, runs an interactive
terminal demo, and manages the TOML configuration shared with the library.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.stdout = cmd.OutOrStdout()
			a.stderr = cmd.ErrOrStderr()
		},
	}

	root.PersistentFlags().String(FlagConfig, "", "Config file path (default: "+DefaultConfigFile+" in this or a parent directory)")
	root.PersistentFlags().String(FlagLogLevel, "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String(FlagLogFile, "", "Log file path (demo default: pullrefresh-debug.log)")
	root.PersistentFlags().Float32(FlagThreshold, 0, "Override pull_threshold")
	root.PersistentFlags().Float32(FlagOpenHeight, 0, "Override open_height")

	root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(f.Name, f)
	})

	root.AddCommand(
		newReplayCommand(a),
		newDemoCommand(a),
		newConfigCommand(a),
		newInitCommand(a),
		newVersionCommand(a),
	)
	return root
}

// configPath resolves the config file: the flag or env value, else the
// nearest pullrefresh.toml, else "" for built-in defaults.
func (a *app) configPath() (string, error) {
	if p := a.v.GetString(FlagConfig); p != "" {
		return p, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// loadConfig reads the config file and applies flag and env overrides.
func (a *app) loadConfig() (pullrefresh.Config, error) {
	path, err := a.configPath()
	if err != nil {
		return pullrefresh.Config{}, err
	}
	cfg := pullrefresh.DefaultConfig()
	if path != "" {
		if cfg, err = pullrefresh.LoadConfig(path); err != nil {
			return pullrefresh.Config{}, err
		}
	}

	if a.v.IsSet(FlagThreshold) {
		cfg.PullThreshold = float32(a.v.GetFloat64(FlagThreshold))
	}
	if a.v.IsSet(FlagOpenHeight) {
		cfg.OpenHeight = float32(a.v.GetFloat64(FlagOpenHeight))
	}
	if err := cfg.Validate(); err != nil {
		return pullrefresh.Config{}, fmt.Errorf("config overrides: %w", err)
	}
	return cfg, nil
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "pullrefresh %s\n", a.version)
		},
	}
}

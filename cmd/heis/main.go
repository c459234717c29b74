package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/heis/internal/config"
	"github.com/rgehrsitz/heis/internal/domain"
)

// zerologLogger implements calculation.Logger on top of zerolog
type zerologLogger struct {
	log zerolog.Logger
}

func newZerologLogger(w io.Writer, debugMode bool) zerologLogger {
	level := zerolog.WarnLevel
	if debugMode {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerologLogger{log: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

func (l zerologLogger) Debugf(format string, args ...any) { l.log.Debug().Msgf(format, args...) }
func (l zerologLogger) Infof(format string, args ...any)  { l.log.Info().Msgf(format, args...) }
func (l zerologLogger) Warnf(format string, args ...any)  { l.log.Warn().Msgf(format, args...) }
func (l zerologLogger) Errorf(format string, args ...any) { l.log.Error().Msgf(format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "heis %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// newRootCmd builds the full command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "heis",
		Short: "Health & economic intervention impact calculator",
		Long: `Estimate the GDP, healthcare, Medicare and quality-adjusted life year impact
of health interventions on a US population segment, project it over time and
test how sensitive the result is to its assumptions.

The configuration argument is optional; without it the built-in defaults are used.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(
		calculateCmd(),
		projectCmd(),
		scenariosCmd(),
		monteCarloCmd(),
		stratifyCmd(),
		sensitivityCmd(),
		compareCmd(),
		interventionsCmd(),
		validateCmd(),
		versionCmd(),
	)
	return root
}

var rootCmd = newRootCmd()

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := loadConfiguration(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s is valid (%d interventions, %d population segments)\n",
				source, len(cfg.Interventions), len(cfg.Segments))
			return nil
		},
	}
}

func interventionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interventions [config-file]",
		Short: "List configured interventions and population segments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfiguration(args)
			if err != nil {
				return err
			}
			return writeCatalog(cmd.OutOrStdout(), cfg)
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfiguration loads the optional config file argument, falling back to
// the built-in defaults. It returns the configuration and a display name for
// its source.
func loadConfiguration(args []string) (*domain.Configuration, string, error) {
	if len(args) == 0 || args[0] == "" {
		return config.DefaultConfiguration(), "defaults", nil
	}
	cfg, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return nil, "", err
	}
	return cfg, args[0], nil
}

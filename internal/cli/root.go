// Package cli wires the pumps to the terminal: cobra commands, signal
// handling, the interactive send prompt, and sink construction. Everything
// here is collaborator scaffolding; the pumps and codec never see it.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chabad360/oscwatch/internal/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Shared state set during PersistentPreRunE
	cfg    config.Config
	logger zerolog.Logger
)

// rootCmd is the base command for oscwatch.
var rootCmd = &cobra.Command{
	Use:   "oscwatch",
	Short: "Observe and inject OSC messages over UDP",
	Long: `oscwatch is a terminal tool for debugging audio, lighting and control
networks that speak Open Sound Control over UDP. It monitors a port and
pretty-prints every decoded message, or sends ad-hoc messages typed at a
prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Verbose = true
		}

		level := zerolog.InfoLevel
		if cfg.Verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

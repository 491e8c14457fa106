package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chabad360/oscwatch/internal/config"
	"github.com/chabad360/oscwatch/internal/pump"
	"github.com/chabad360/oscwatch/internal/render"
	"github.com/chabad360/oscwatch/internal/transport"
)

var (
	monitorPort    int
	monitorAddress string
	monitorOutput  string
	monitorLogFile string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Listen on a UDP port and print every OSC message that arrives",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Mode = config.ModeMonitor
		if cmd.Flags().Changed("port") {
			cfg.Port = monitorPort
		}
		if cmd.Flags().Changed("address") {
			cfg.Address = monitorAddress
		}
		if cmd.Flags().Changed("output") {
			cfg.Output = monitorOutput
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = monitorLogFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var sink pump.MonitorSink
		if cfg.Output == config.OutputPretty {
			sink = render.NewConsole(cmd.OutOrStdout())
		} else {
			sink = render.NewStructured(cmd.OutOrStdout(), cfg.Output)
		}
		if cfg.LogFile != "" {
			flog, err := render.OpenFileLog(cfg.LogFile)
			if err != nil {
				return err
			}
			defer flog.Close()
			sink = render.MonitorTee(sink, flog)
		}

		ep, err := transport.Bind(cfg.Address, cfg.Port)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info().Str("listen", ep.LocalAddr().String()).Msg("monitoring, ctrl+c to stop")
		m := &pump.Monitor{Endpoint: ep, Sink: sink, Log: logger}
		return m.Run(ctx)
	},
}

func init() {
	monitorCmd.Flags().IntVarP(&monitorPort, "port", "p", 9000, "UDP port to listen on")
	monitorCmd.Flags().StringVarP(&monitorAddress, "address", "a", "0.0.0.0", "listen address (multicast groups are joined)")
	monitorCmd.Flags().StringVarP(&monitorOutput, "output", "o", "pretty", "output format: pretty, json, yaml")
	monitorCmd.Flags().StringVar(&monitorLogFile, "log-file", "", "append a JSON log of all traffic to this file")
	rootCmd.AddCommand(monitorCmd)
}

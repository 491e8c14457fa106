package cli

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chabad360/oscwatch/internal/config"
	"github.com/chabad360/oscwatch/internal/pump"
	"github.com/chabad360/oscwatch/internal/render"
	"github.com/chabad360/oscwatch/internal/transport"
)

var (
	sendTarget  string
	sendLogFile string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send OSC messages typed as '/address value' lines",
	Long: `Send reads commands of the form

  /osc/address value

and sends each as a single-argument OSC message to the target. A quoted
value is a string, a value with a decimal point is a float32, anything
else must be an int32. Type q, quit or exit to stop.

With stdin piped, lines are read from it instead of the interactive
prompt:

  echo '/mixer/ch/3/fader 0.82' | oscwatch send -t 10.0.0.5:8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Mode = config.ModeSend
		if cmd.Flags().Changed("target") {
			cfg.Target = sendTarget
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = sendLogFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		host, port, err := cfg.SplitTarget()
		if err != nil {
			return err
		}

		ep, err := transport.Open()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var fileSink pump.SendSink
		if cfg.LogFile != "" {
			flog, err := render.OpenFileLog(cfg.LogFile)
			if err != nil {
				_ = ep.Close()
				return err
			}
			defer flog.Close()
			fileSink = flog
		}

		lines := make(chan string, 16)
		s := &pump.Sender{Endpoint: ep, Host: host, Port: port, Lines: lines, Log: logger}

		if isatty.IsTerminal(os.Stdin.Fd()) {
			return runPrompt(ctx, s, lines, fileSink, cfg.Target)
		}

		// Piped input: plain console echo of each result.
		sink := pump.SendSink(render.NewConsole(cmd.OutOrStdout()))
		if fileSink != nil {
			sink = render.SendTee(sink, fileSink)
		}
		s.Sink = sink

		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				select {
				case lines <- scanner.Text():
				case <-ctx.Done():
					return
				}
			}
		}()
		return s.Run(ctx)
	},
}

// runPrompt runs the send pump behind the interactive bubbletea prompt. The
// prompt feeds lines in; results come back as tea messages.
func runPrompt(ctx context.Context, s *pump.Sender, lines chan string, fileSink pump.SendSink, target string) error {
	// Own cancel so closing the prompt always stops the pump; the lines
	// channel is never closed because prompt commands may still hold it.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newPromptModel(target, lines))

	sink := pump.SendSink(&promptSink{program: p})
	if fileSink != nil {
		sink = render.SendTee(sink, fileSink)
	}
	s.Sink = sink

	pumpErr := make(chan error, 1)
	go func() {
		err := s.Run(ctx)
		pumpErr <- err
		p.Send(pumpDoneMsg{err: err})
	}()

	_, uiErr := p.Run()
	cancel()
	err := <-pumpErr
	if uiErr != nil {
		return uiErr
	}
	return err
}

// promptSink forwards send results into the running bubbletea program.
type promptSink struct {
	program *tea.Program
}

func (s *promptSink) Result(res pump.SendResult) {
	s.program.Send(resultMsg(res))
}

func init() {
	sendCmd.Flags().StringVarP(&sendTarget, "target", "t", "127.0.0.1:9000", "destination host:port")
	sendCmd.Flags().StringVar(&sendLogFile, "log-file", "", "append a JSON log of all sends to this file")
	rootCmd.AddCommand(sendCmd)
}

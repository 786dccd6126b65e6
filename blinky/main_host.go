//go:build !tinygo

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harveysanders/uarttick/blinky/putchar"
	"github.com/harveysanders/uarttick/blinky/reporter"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type simConfig struct {
	ticks    uint64
	interval time.Duration
	timeout  time.Duration
	led      bool
	board    string
	verbose  bool
}

// newRootCmd builds the host simulator. Tick output goes to stdout through the
// same redirector the firmware uses; logs go to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfg simConfig
	cmd := &cobra.Command{
		Use:           "blinky",
		Short:         "Run the tick reporter on the host with a simulated LED and UART",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(cfg, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&cfg.ticks, "ticks", 0, "Stop after N ticks (0 = run forever).")
	f.DurationVar(&cfg.interval, "interval", reporter.DefaultInterval, "Sleep between ticks.")
	f.DurationVar(&cfg.timeout, "timeout", 0, "Per-character transmit timeout (0 = wait forever).")
	f.BoolVar(&cfg.led, "led", false, "Initial LED level.")
	f.StringVar(&cfg.board, "board", "host", "Board name printed in the banner.")
	f.BoolVarP(&cfg.verbose, "verbose", "v", false, "Log LED changes.")
	return cmd
}

func runSim(cfg simConfig, stdout, stderr io.Writer) error {
	if cfg.interval < 0 {
		return fmt.Errorf("invalid interval %s", cfg.interval)
	}
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	out := putchar.New(putchar.NewUART(hostUART{stdout}), putchar.Config{Timeout: cfg.timeout})
	if _, err := out.WriteString(banner(cfg.board)); err != nil {
		return err
	}

	r := reporter.New(reporter.Config{
		Out:      out,
		LED:      &hostPin{level: cfg.led, logger: logger},
		Interval: cfg.interval,
		Logger:   logger,
	})
	if cfg.ticks == 0 {
		r.Run()
	}
	for i := uint64(0); i < cfg.ticks; i++ {
		r.Tick()
	}
	return nil
}

// hostUART adapts a plain writer to drivers.UART. There is nothing to read.
type hostUART struct {
	w io.Writer
}

func (u hostUART) Read(p []byte) (int, error)  { return 0, io.EOF }
func (u hostUART) Write(p []byte) (int, error) { return u.w.Write(p) }
func (u hostUART) Buffered() int               { return 0 }

// hostPin stands in for the LED.
type hostPin struct {
	level  bool
	logger *slog.Logger
}

func (p *hostPin) Get() bool { return p.level }

func (p *hostPin) Set(high bool) {
	p.level = high
	p.logger.Debug("led:set", slog.Bool("high", high))
}

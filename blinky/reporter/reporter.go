// Package reporter runs the tick loop: print the counter, toggle the LED,
// sleep, forever.
package reporter

import (
	"io"
	"log/slog"
	"strconv"
	"time"
)

// DefaultInterval is the sleep between iterations.
const DefaultInterval = 1000 * time.Millisecond

// Pin is a digital output. machine.Pin satisfies it.
type Pin interface {
	Get() bool
	Set(high bool)
}

// State is everything the loop carries from one iteration to the next.
type State struct {
	Count uint32 // Next value to print. Wraps on overflow.
	LED   bool   // Current LED level.
}

// Step renders the line for s into buf (reusing its storage) and returns the
// state after the iteration: the counter incremented and the LED inverted.
func Step(s State, buf []byte) (State, []byte) {
	buf = append(buf[:0], "Tick: "...)
	buf = strconv.AppendUint(buf, uint64(s.Count), 10)
	buf = append(buf, '\n')
	return State{Count: s.Count + 1, LED: !s.LED}, buf
}

// Config configures a Reporter.
type Config struct {
	Out      io.Writer           // Where tick lines are printed.
	LED      Pin                 // Toggled once per iteration.
	Interval time.Duration       // Defaults to DefaultInterval.
	Sleep    func(time.Duration) // Defaults to time.Sleep.
	Logger   *slog.Logger        // Optional.
}

// Reporter owns the tick counter. It runs on a single goroutine.
type Reporter struct {
	out      io.Writer
	led      Pin
	interval time.Duration
	sleep    func(time.Duration)
	logger   *slog.Logger
	state    State
	// Preallocated so printing a line does not allocate.
	buf []byte
}

// New returns a Reporter with the counter at zero and the LED level read from
// the pin.
func New(cfg Config) *Reporter {
	if cfg.Out == nil || cfg.LED == nil {
		panic("reporter: Out and LED are required")
	}
	r := &Reporter{
		out:      cfg.Out,
		led:      cfg.LED,
		interval: cfg.Interval,
		sleep:    cfg.Sleep,
		logger:   cfg.Logger,
		buf:      make([]byte, 0, len("Tick: 4294967295\n")),
	}
	if r.interval <= 0 {
		r.interval = DefaultInterval
	}
	if r.sleep == nil {
		r.sleep = time.Sleep
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r.state.LED = r.led.Get()
	return r
}

// State returns the current loop state.
func (r *Reporter) State() State { return r.state }

// Tick runs one iteration.
func (r *Reporter) Tick() {
	next, line := Step(r.state, r.buf)
	r.buf = line
	if _, err := r.out.Write(line); err != nil {
		r.logger.Error("reporter:emit-failed",
			slog.Uint64("tick", uint64(r.state.Count)),
			slog.String("err", err.Error()),
		)
	}
	r.state = next
	r.led.Set(next.LED)
	r.logger.Debug("reporter:toggled", slog.Bool("led", next.LED))
	r.sleep(r.interval)
}

// Run calls Tick forever. It never returns.
func (r *Reporter) Run() {
	for {
		r.Tick()
	}
}

package reporter

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

type fakePin struct {
	level bool
	sets  []bool
}

func (p *fakePin) Get() bool { return p.level }

func (p *fakePin) Set(high bool) {
	p.level = high
	p.sets = append(p.sets, high)
}

type errWriter struct{ err error }

func (w errWriter) Write(p []byte) (int, error) { return 0, w.err }

// events records the order of side effects across the fakes.
type events struct{ log []string }

type eventWriter struct{ ev *events }

func (w eventWriter) Write(p []byte) (int, error) {
	w.ev.log = append(w.ev.log, "emit "+string(p))
	return len(p), nil
}

type eventPin struct {
	ev    *events
	level bool
}

func (p *eventPin) Get() bool { return p.level }
func (p *eventPin) Set(high bool) {
	p.level = high
	p.ev.log = append(p.ev.log, "set")
}

func TestStep(t *testing.T) {
	next, line := Step(State{}, nil)
	qt.Assert(t, string(line), qt.Equals, "Tick: 0\n")
	qt.Assert(t, next, qt.Equals, State{Count: 1, LED: true})

	next, line = Step(next, line)
	qt.Assert(t, string(line), qt.Equals, "Tick: 1\n")
	qt.Assert(t, next, qt.Equals, State{Count: 2, LED: false})
}

func TestStepWraps(t *testing.T) {
	next, line := Step(State{Count: math.MaxUint32}, nil)
	qt.Assert(t, string(line), qt.Equals, "Tick: 4294967295\n")
	qt.Assert(t, next.Count, qt.Equals, uint32(0))

	_, line = Step(next, line)
	qt.Assert(t, string(line), qt.Equals, "Tick: 0\n")
}

func TestTickSequence(t *testing.T) {
	var out bytes.Buffer
	pin := &fakePin{}
	var slept []time.Duration
	r := New(Config{
		Out:   &out,
		LED:   pin,
		Sleep: func(d time.Duration) { slept = append(slept, d) },
	})

	const n = 5
	for i := 0; i < n; i++ {
		r.Tick()
	}
	qt.Assert(t, out.String(), qt.Equals, "Tick: 0\nTick: 1\nTick: 2\nTick: 3\nTick: 4\n")
	qt.Assert(t, r.State().Count, qt.Equals, uint32(n))
	qt.Assert(t, pin.sets, qt.DeepEquals, []bool{true, false, true, false, true})
	qt.Assert(t, slept, qt.HasLen, n)
	for _, d := range slept {
		qt.Assert(t, d, qt.Equals, 1000*time.Millisecond)
	}
}

func TestLEDAlternatesFromInitialLevel(t *testing.T) {
	for _, initial := range []bool{false, true} {
		pin := &fakePin{level: initial}
		r := New(Config{Out: &bytes.Buffer{}, LED: pin, Sleep: func(time.Duration) {}})
		for n := 1; n <= 6; n++ {
			r.Tick()
			qt.Assert(t, pin.level, qt.Equals, initial != (n%2 == 1), qt.Commentf("initial=%v n=%d", initial, n))
			qt.Assert(t, r.State().LED, qt.Equals, pin.level)
		}
	}
}

func TestTickOrder(t *testing.T) {
	ev := &events{}
	r := New(Config{
		Out:      eventWriter{ev},
		LED:      &eventPin{ev: ev},
		Interval: 250 * time.Millisecond,
		Sleep:    func(d time.Duration) { ev.log = append(ev.log, "sleep "+d.String()) },
	})
	r.Tick()
	qt.Assert(t, ev.log, qt.DeepEquals, []string{"emit Tick: 0\n", "set", "sleep 250ms"})
}

func TestEmitFailureIsLoggedAndCounted(t *testing.T) {
	var logs bytes.Buffer
	pin := &fakePin{}
	r := New(Config{
		Out:    errWriter{errors.New("transport timeout")},
		LED:    pin,
		Sleep:  func(time.Duration) {},
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	r.Tick()
	r.Tick()
	qt.Assert(t, r.State().Count, qt.Equals, uint32(2))
	qt.Assert(t, pin.sets, qt.HasLen, 2)
	qt.Assert(t, strings.Count(logs.String(), "reporter:emit-failed"), qt.Equals, 2)
	qt.Assert(t, logs.String(), qt.Contains, "tick=1")
}

func TestNewRequiresOutAndLED(t *testing.T) {
	qt.Assert(t, func() { New(Config{LED: &fakePin{}}) }, qt.PanicMatches, "reporter: .*")
	qt.Assert(t, func() { New(Config{Out: &bytes.Buffer{}}) }, qt.PanicMatches, "reporter: .*")
}

// Package putchar redirects formatted output to a serial transport one
// character at a time.
//
// A Redirector is the character sink hook for anything that writes through an
// io.Writer (fmt.Fprintf, slog handlers, strconv-built buffers). Every byte is
// handed to the Transport in its own Transmit call, in order, with no
// buffering:
//
//	r := putchar.New(putchar.NewUART(machine.DefaultUART), putchar.Config{})
//	fmt.Fprintf(r, "Tick: %d\n", n)
package putchar

import (
	"errors"
	"math"
	"time"
)

// EOF is returned by PutChar when the transport rejected the character.
const EOF = -1

// MaxDelay makes Transmit wait for the transport indefinitely.
const MaxDelay = time.Duration(math.MaxInt64)

var (
	// ErrTransportTimeout means the transport did not accept the bytes within
	// the allowed wait.
	ErrTransportTimeout = errors.New("transport timeout")
	// ErrTransportFault means the transport hardware reported an error.
	ErrTransportFault = errors.New("transport fault")
)

// Transport is a blocking byte-oriented transmitter such as a UART.
type Transport interface {
	// Transmit blocks until p has been accepted or timeout elapsed.
	// A timeout of MaxDelay waits forever.
	Transmit(p []byte, timeout time.Duration) error
}

// Config configures a Redirector.
type Config struct {
	// Timeout is passed to every Transmit call. Zero means MaxDelay.
	Timeout time.Duration
}

// Redirector forwards every character written to it to a Transport.
// It is not safe for concurrent use.
type Redirector struct {
	tr      Transport
	timeout time.Duration
	char    [1]byte
	err     error
}

// New returns a Redirector that owns tr for the rest of its life.
func New(tr Transport, cfg Config) *Redirector {
	if tr == nil {
		panic("putchar: nil transport")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = MaxDelay
	}
	return &Redirector{tr: tr, timeout: timeout}
}

// PutChar emits one character with a single-byte Transmit. It returns c when
// the transport accepted it and EOF otherwise; the failure is kept in Err.
func (r *Redirector) PutChar(c int) int {
	r.char[0] = byte(c)
	if err := r.tr.Transmit(r.char[:], r.timeout); err != nil {
		r.err = err
		return EOF
	}
	return c
}

// Write emits p one byte at a time. It stops at the first byte the transport
// rejects and returns the number of bytes sent before it.
func (r *Redirector) Write(p []byte) (int, error) {
	for i, b := range p {
		if r.PutChar(int(b)) == EOF {
			return i, r.err
		}
	}
	return len(p), nil
}

// WriteString is Write for strings, avoiding the []byte conversion.
func (r *Redirector) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if r.PutChar(int(s[i])) == EOF {
			return i, r.err
		}
	}
	return len(s), nil
}

// WriteByte implements io.ByteWriter.
func (r *Redirector) WriteByte(c byte) error {
	if r.PutChar(int(c)) == EOF {
		return r.err
	}
	return nil
}

// Err returns the most recent transmit error, or nil.
func (r *Redirector) Err() error { return r.err }

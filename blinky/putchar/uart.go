package putchar

import (
	"fmt"
	"io"
	"time"

	"tinygo.org/x/drivers"
)

// UART transmits over a drivers.UART, which *machine.UART implements.
type UART struct {
	dev drivers.UART
	now func() time.Time
}

// NewUART returns a Transport writing to dev.
func NewUART(dev drivers.UART) *UART {
	return &UART{dev: dev, now: time.Now}
}

// Transmit writes p to the UART. The write itself blocks until the UART
// accepts every byte, so a bounded timeout is checked once the write returns.
func (u *UART) Transmit(p []byte, timeout time.Duration) error {
	var start time.Time
	if timeout != MaxDelay {
		start = u.now()
	}
	n, err := u.dev.Write(p)
	if err != nil {
		return fmt.Errorf("putchar: uart write: %w: %v", ErrTransportFault, err)
	}
	if n < len(p) {
		return fmt.Errorf("putchar: uart write: %w: %v", ErrTransportFault, io.ErrShortWrite)
	}
	if timeout != MaxDelay && u.now().Sub(start) > timeout {
		return fmt.Errorf("putchar: uart write took longer than %s: %w", timeout, ErrTransportTimeout)
	}
	return nil
}

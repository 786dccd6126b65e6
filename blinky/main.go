//go:build tinygo

package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/uarttick/blinky/putchar"
	"github.com/harveysanders/uarttick/blinky/reporter"
)

const baudRate = 115200

// Set via linker flags, e.g. -ldflags "-X main.board=STM32G071".
var board = "STM32G071"

func main() {
	uart := machine.DefaultUART
	err := uart.Configure(machine.UARTConfig{BaudRate: baudRate})

	// Everything printed from here on goes out the UART one byte at a time.
	out := putchar.New(putchar.NewUART(uart), putchar.Config{})
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	if err != nil {
		printErrForever(logger, "configure UART", slog.Any("reason", err))
	}

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	out.WriteString(banner(board))

	r := reporter.New(reporter.Config{
		Out:    out,
		LED:    led,
		Logger: logger,
	})
	r.Run()
}

// printErrForever logs msg once a second. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}

// hostio.go - raw-terminal host adapter feeding the UART from stdin/stdout

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TerminalHost pumps raw stdin bytes into a Machine's UART and drains the
// UART's output queue to stdout. It owns the terminal mode for its lifetime:
// callers must always pair Start with a deferred Stop to restore the tty.
type TerminalHost struct {
	machine *Machine
	fd      int

	oldState    *term.State
	nonblockSet bool
}

// NewTerminalHost builds a host adapter bound to stdin/stdout and the given machine.
func NewTerminalHost(m *Machine) *TerminalHost {
	return &TerminalHost{machine: m, fd: int(os.Stdin.Fd())}
}

// Start puts the controlling terminal into raw, non-blocking mode. Restore
// it with Stop before the process exits, or the shell is left in raw mode.
func (h *TerminalHost) Start() error {
	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		return fmt.Errorf("riscv-vm: entering raw terminal mode: %w", err)
	}
	h.oldState = oldState

	if err := unix.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
		return fmt.Errorf("riscv-vm: setting stdin non-blocking: %w", err)
	}
	h.nonblockSet = true
	return nil
}

// Stop restores the terminal to its prior state. Safe to call more than once.
func (h *TerminalHost) Stop() {
	if h.nonblockSet {
		_ = unix.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldState != nil {
		_ = term.Restore(h.fd, h.oldState)
		h.oldState = nil
	}
}

// PumpInput reads whatever stdin bytes are available (non-blocking) and
// feeds them to the machine's UART, translating CR to LF the way a raw
// terminal's Enter key is conventionally handled. Intended to run in its
// own errgroup goroutine alongside the CPU loop.
func (h *TerminalHost) PumpInput(ctx context.Context) error {
	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := unix.Read(h.fd, buf)
		if n > 0 {
			for _, b := range buf[:n] {
				if b == '\r' {
					b = '\n'
				}
				h.machine.InputByte(b)
			}
		}
		switch err {
		case nil:
			if n == 0 {
				time.Sleep(2 * time.Millisecond)
			}
		case unix.EAGAIN:
			time.Sleep(2 * time.Millisecond)
		default:
			return fmt.Errorf("riscv-vm: reading stdin: %w", err)
		}
	}
}

// DrainOutput pulls whatever bytes the guest has written to the UART's
// transmit register since the last call and writes them to stdout.
func (h *TerminalHost) DrainOutput() {
	for {
		b, ok := h.machine.NextOutputByte()
		if !ok {
			return
		}
		os.Stdout.Write([]byte{b})
	}
}

// uart.go - 16550 serial device subset mediating host<->guest byte I/O

package main

import "sync"

// UART register byte offsets from the device base, per spec.md §4.3.
const (
	uartRegRBR = 0 // receiver buffer (read) / transmit holding (write)
	uartRegIER = 1 // interrupt enable
	uartRegIIR = 2 // interrupt identification (read) / FIFO control (write)
	uartRegLCR = 3 // line control
	uartRegMCR = 4 // modem control
	uartRegLSR = 5 // line status
	uartRegMSR = 6 // modem status
	uartRegSCR = 7 // scratch
)

// LSR bits.
const (
	lsrDR   = 1 << 0 // data ready (input queue nonempty)
	lsrTHRE = 1 << 5 // transmit holding register empty, always 1
	lsrTEMT = 1 << 6 // transmitter empty, always 1
)

// IER bits.
const (
	ierERBFI = 1 << 0 // enable received-data-available interrupt
)

const uartQueueCapacity = 4096

// UART implements a single-producer/single-consumer 16550 subset: an input
// queue fed by the embedder (input_byte) and drained by the guest, and an
// output queue fed by the guest (THR writes) and drained by the embedder
// (next_output_byte).
type UART struct {
	mu sync.Mutex

	input  []byte // FIFO; front at index 0
	output []byte

	ier byte
	lcr byte
	mcr byte
	scr byte
}

// NewUART constructs a UART with both queues empty.
func NewUART() *UART {
	return &UART{}
}

// InputByte is the embedder hook that pushes one byte into the input queue.
// Safe to call concurrently with Bus reads/writes from the CPU goroutine.
func (u *UART) InputByte(b byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.input) < uartQueueCapacity {
		u.input = append(u.input, b)
	}
}

// InterruptPending reports whether this UART is currently asserting its
// interrupt line (mip.meip), per spec.md §4.3: IER.ERBFI set and input
// queue nonempty.
func (u *UART) InterruptPending() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ier&ierERBFI != 0 && len(u.input) > 0
}

// NextOutputByte is the embedder hook draining one byte from the output
// queue. Returns ok=false if the queue is empty.
func (u *UART) NextOutputByte() (byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.output) == 0 {
		return 0, false
	}
	b := u.output[0]
	u.output = u.output[1:]
	return b, true
}

// QueueBytes reports the combined length of the input and output queues, for
// MemoryUsage accounting.
func (u *UART) QueueBytes() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.input) + len(u.output)
}

// Read implements Device. offset is relative to the UART base.
func (u *UART) Read(offset uint64, width int) (uint64, bool) {
	if width != 1 || offset > uartRegSCR {
		return 0, false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	switch offset {
	case uartRegRBR:
		if len(u.input) == 0 {
			return 0, true
		}
		b := u.input[0]
		u.input = u.input[1:]
		return uint64(b), true
	case uartRegIER:
		return uint64(u.ier), true
	case uartRegIIR:
		// No pending-interrupt encoding is modeled; report "no interrupt pending".
		return 0xC1, true
	case uartRegLCR:
		return uint64(u.lcr), true
	case uartRegMCR:
		return uint64(u.mcr), true
	case uartRegLSR:
		lsr := byte(lsrTHRE | lsrTEMT)
		if len(u.input) > 0 {
			lsr |= lsrDR
		}
		return uint64(lsr), true
	case uartRegMSR:
		return 0, true
	case uartRegSCR:
		return uint64(u.scr), true
	}
	return 0, false
}

// Write implements Device. offset is relative to the UART base.
func (u *UART) Write(offset uint64, width int, value uint64) bool {
	if width != 1 || offset > uartRegSCR {
		return false
	}
	b := byte(value)
	u.mu.Lock()
	switch offset {
	case uartRegRBR:
		if len(u.output) < uartQueueCapacity {
			u.output = append(u.output, b)
		}
		// A full output queue silently drops the byte: "wire is on fire".
	case uartRegIER:
		u.ier = b
	case uartRegIIR:
		// FCR write: FIFO control has no timing effect on this model.
	case uartRegLCR:
		u.lcr = b
	case uartRegMCR:
		u.mcr = b
	case uartRegSCR:
		u.scr = b
	default:
		u.mu.Unlock()
		return false
	}
	u.mu.Unlock()
	return true
}

// machine.go - the embeddable facade wiring CPU, Bus, and devices into one hart

package main

import "fmt"

// Machine is one RV64IMAC hart plus its memory map: boot ROM, CLINT, UART,
// an optional VirtIO-BLK device, and DRAM. It is the one type an embedder
// constructs directly; everything else in this package is reached through it.
type Machine struct {
	cpu    *CPU
	bus    *Bus
	dram   *DRAM
	uart   *UART
	clint  *CLINT
	virtio *VirtioBlk
}

// New builds a Machine, loads image into DRAM (detecting an ELF64/RISC-V
// payload, whose own entry point wins, or falling back to a flat binary
// placed at DRAMBase with entryPC as its reset address), and resets the hart
// accordingly. dramSize of 0 selects DefaultDRAMSize; entryPC of 0 selects
// DRAMBase for a flat image.
func New(image []byte, entryPC, dramSize uint64) (*Machine, error) {
	if dramSize == 0 {
		dramSize = DefaultDRAMSize
	}
	dram := NewDRAM(dramSize)
	entryPC, err := loadImage(dram, image, entryPC)
	if err != nil {
		return nil, err
	}

	clint := NewCLINT()
	uart := NewUART()
	virtio := NewVirtioBlk()
	bootROM := NewBootROM(entryPC)
	bus := NewBus(bootROM, clint, uart, virtio, dram)
	virtio.AttachBus(bus)

	cpu := NewCPU(bus, clint, uart, virtio, bootROMBase)

	return &Machine{
		cpu:    cpu,
		bus:    bus,
		dram:   dram,
		uart:   uart,
		clint:  clint,
		virtio: virtio,
	}, nil
}

// LoadDisk attaches a disk image to the machine's VirtIO-BLK device. Call it
// before the first Step if the guest is expected to see the disk at boot.
func (m *Machine) LoadDisk(b []byte) {
	m.virtio.LoadDisk(b)
}

// DiskBytes returns the live backing bytes of the attached disk image, for
// byte-equivalence checks between what the guest wrote and what's on disk.
func (m *Machine) DiskBytes() []byte {
	return m.virtio.DiskBytes()
}

// Step executes one architectural instruction. It returns false once the
// hart has halted, either from an unbootable trap (no handler installed) or
// because a previous call already halted it.
func (m *Machine) Step() bool {
	return m.cpu.Step()
}

// Halted reports whether the hart has stopped executing instructions.
func (m *Machine) Halted() bool {
	return m.cpu.Halted()
}

// PC returns the hart's current program counter, mostly useful for tests
// and diagnostics.
func (m *Machine) PC() uint64 {
	return m.cpu.PC()
}

// Reg returns the current value of integer register idx (0-31).
func (m *Machine) Reg(idx uint32) uint64 {
	return m.cpu.Reg(idx)
}

// InputByte delivers one byte of host keyboard input to the UART's receive
// queue. It is safe to call concurrently with Step.
func (m *Machine) InputByte(b byte) {
	m.uart.InputByte(b)
}

// NextOutputByte pops the next byte the guest has written to the UART's
// transmit register, if any is queued.
func (m *Machine) NextOutputByte() (byte, bool) {
	return m.uart.NextOutputByte()
}

// MemoryUsage reports the total bytes this machine has allocated: DRAM, the
// attached disk image, and the UART's in-flight input/output queues.
func (m *Machine) MemoryUsage() uint64 {
	usage := m.dram.Size() + uint64(len(m.virtio.DiskBytes()))
	usage += uint64(m.uart.QueueBytes())
	return usage
}

// String renders a short diagnostic summary: pc, halt state, and DRAM size.
func (m *Machine) String() string {
	return fmt.Sprintf("riscv-vm: pc=0x%x halted=%v dram=%dMiB", m.cpu.PC(), m.cpu.Halted(), m.dram.Size()/(1024*1024))
}

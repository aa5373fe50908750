package main

import "testing"

func newTestCPU() *CPU {
	dram := NewDRAM(4096)
	clint := NewCLINT()
	uart := NewUART()
	virtio := NewVirtioBlk()
	bootROM := NewBootROM(DRAMBase)
	bus := NewBus(bootROM, clint, uart, virtio, dram)
	virtio.AttachBus(bus)
	return NewCPU(bus, clint, uart, virtio, DRAMBase)
}

func TestCSR_MisaReportsRV64IMAC(t *testing.T) {
	c := newTestCPU()
	v, ok := c.csrRead(csrMisa)
	if !ok {
		t.Fatal("misa read should succeed")
	}
	if v != misaRV64IMAC {
		t.Fatalf("misa = 0x%x, want 0x%x", v, misaRV64IMAC)
	}
}

func TestCSR_ReadOnlyWriteFails(t *testing.T) {
	c := newTestCPU()
	if c.csrWrite(csrMisa, 0) {
		t.Fatal("writing misa should fail: it is read-only")
	}
	if c.csrWrite(csrMhartid, 1) {
		t.Fatal("writing mhartid should fail: it is read-only")
	}
	if c.csrWrite(csrMip, 0) {
		t.Fatal("writing mip should fail: it is derived from device state")
	}
}

func TestCSR_UnknownCSRFails(t *testing.T) {
	c := newTestCPU()
	if _, ok := c.csrRead(0x7FF); ok {
		t.Fatal("reading an unrecognized CSR should fail")
	}
	if c.csrWrite(0x7FF, 0) {
		t.Fatal("writing an unrecognized CSR should fail")
	}
}

func TestCSR_MstatusWriteIsMasked(t *testing.T) {
	c := newTestCPU()
	if !c.csrWrite(csrMstatus, ^uint64(0)) {
		t.Fatal("mstatus write should succeed")
	}
	v, _ := c.csrRead(csrMstatus)
	if v&^(mstatusMIE|mstatusMPIE|mstatusMPPMask) != 0 {
		t.Fatalf("mstatus = 0x%x, want only MIE/MPIE/MPP bits set", v)
	}
}

func TestCSR_MepcWriteClearsLowBit(t *testing.T) {
	c := newTestCPU()
	c.csrWrite(csrMepc, 0x1001)
	v, _ := c.csrRead(csrMepc)
	if v != 0x1000 {
		t.Fatalf("mepc = 0x%x, want 0x1000 (low bit cleared)", v)
	}
}

func TestCSR_MipReflectsDeviceState(t *testing.T) {
	c := newTestCPU()
	v, _ := c.csrRead(csrMip)
	if v&mipMEIP != 0 {
		t.Fatal("mip.MEIP should be clear with no UART interrupt pending")
	}
	c.uart.Write(uartRegIER, 1, ierERBFI)
	c.uart.InputByte('a')
	v, _ = c.csrRead(csrMip)
	if v&mipMEIP == 0 {
		t.Fatal("mip.MEIP should be set once the UART asserts its interrupt line")
	}
}

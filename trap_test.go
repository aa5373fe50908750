package main

import "testing"

func TestTrap_HaltsWhenMtvecZero(t *testing.T) {
	c := newTestCPU()
	c.pc = 0x2000
	c.raiseTrap(TrapIllegalInstruction, 0xdead)
	if !c.Halted() {
		t.Fatal("a trap with mtvec=0 should halt the hart")
	}
	if c.csr[csrMepc] != 0x2000 {
		t.Fatalf("mepc = 0x%x, want 0x2000", c.csr[csrMepc])
	}
	if c.csr[csrMcause] != uint64(TrapIllegalInstruction) {
		t.Fatalf("mcause = %d, want %d", c.csr[csrMcause], TrapIllegalInstruction)
	}
	if c.csr[csrMtval] != 0xdead {
		t.Fatalf("mtval = 0x%x, want 0xdead", c.csr[csrMtval])
	}
}

func TestTrap_JumpsToMtvecWhenSet(t *testing.T) {
	c := newTestCPU()
	c.csr[csrMtvec] = 0x4000
	c.pc = 0x2000
	c.raiseTrap(TrapBreakpoint, 0)
	if c.Halted() {
		t.Fatal("a trap with mtvec set should not halt")
	}
	if c.pc != 0x4000 {
		t.Fatalf("pc = 0x%x, want 0x4000", c.pc)
	}
}

func TestTrap_SavesAndRestoresMIE(t *testing.T) {
	c := newTestCPU()
	c.csr[csrMtvec] = 0x4000
	c.csr[csrMstatus] = mstatusMIE
	c.pc = 0x2000
	c.raiseTrap(TrapEcallFromM, 0)

	status := c.csr[csrMstatus]
	if status&mstatusMIE != 0 {
		t.Fatal("MIE should be cleared on trap entry")
	}
	if status&mstatusMPIE == 0 {
		t.Fatal("MPIE should hold the pre-trap MIE value (1)")
	}

	c.csr[csrMepc] = 0x2000
	c.mret()
	if c.pc != 0x2000 {
		t.Fatalf("mret: pc = 0x%x, want 0x2000", c.pc)
	}
	if c.csr[csrMstatus]&mstatusMIE == 0 {
		t.Fatal("mret should restore MIE from MPIE")
	}
}

func TestTrap_ClearsReservationOnEntry(t *testing.T) {
	c := newTestCPU()
	c.reservationValid = true
	c.csr[csrMtvec] = 0x4000
	c.raiseTrap(TrapIllegalInstruction, 0)
	if c.reservationValid {
		t.Fatal("entering a trap must clear any outstanding LR reservation")
	}
}

func TestInterrupt_VectoredMode(t *testing.T) {
	c := newTestCPU()
	c.csr[csrMtvec] = 0x4000 | 1 // vectored mode
	c.raiseInterrupt(causeMachineTimer)
	want := uint64(0x4000 + 4*causeMachineTimer)
	if c.pc != want {
		t.Fatalf("vectored interrupt pc = 0x%x, want 0x%x", c.pc, want)
	}
	if c.csr[csrMcause]>>63 == 0 {
		t.Fatal("interrupt mcause must have the high bit set")
	}
}

// trap.go - synchronous exception and asynchronous interrupt delivery

package main

// TrapKind enumerates the synchronous exceptions this core raises.
// TrapNone means "no trap". Values match the architectural exception codes
// from spec.md §7 so they can be written to mcause directly.
type TrapKind int64

const (
	TrapNone                   TrapKind = -1
	TrapInstrAddrMisaligned    TrapKind = 0
	TrapInstrAccessFault       TrapKind = 1
	TrapIllegalInstruction     TrapKind = 2
	TrapBreakpoint             TrapKind = 3
	TrapLoadAddrMisaligned     TrapKind = 4
	TrapLoadAccessFault        TrapKind = 5
	TrapStoreAddrMisaligned    TrapKind = 6
	TrapStoreAccessFault       TrapKind = 7
	TrapEcallFromM             TrapKind = 11
)

// Interrupt cause codes (standard RISC-V machine-mode numbering).
const (
	causeMachineSoftware = 3
	causeMachineTimer    = 7
	causeMachineExternal = 11
)

// raiseTrap delivers a synchronous exception per spec.md §4.1's trap
// protocol: save PC, encode cause, record tval, push MIE->MPIE, jump to
// mtvec. A trap taken while mtvec is zero is unbootable and halts the core.
func (c *CPU) raiseTrap(kind TrapKind, tval uint64) {
	c.reservationValid = false

	c.csr[csrMepc] = c.pc
	c.csr[csrMcause] = uint64(kind)
	c.csr[csrMtval] = tval

	status := c.csr[csrMstatus]
	if status&mstatusMIE != 0 {
		status |= mstatusMPIE
	} else {
		status &^= mstatusMPIE
	}
	status &^= mstatusMIE
	status |= mstatusMPPMask // MPP = M (machine mode is the only mode this core runs)
	c.csr[csrMstatus] = status

	tvec := c.csr[csrMtvec]
	if tvec == 0 {
		c.state = StateHalted
		return
	}
	c.pc = tvec & ^uint64(1) // direct mode: jump straight to base
}

// raiseInterrupt delivers an asynchronous interrupt: same protocol as
// raiseTrap but with the cause's high bit set, and mtval left at 0.
func (c *CPU) raiseInterrupt(cause uint64) {
	c.reservationValid = false

	c.csr[csrMepc] = c.pc
	c.csr[csrMcause] = cause | (uint64(1) << 63)
	c.csr[csrMtval] = 0

	status := c.csr[csrMstatus]
	if status&mstatusMIE != 0 {
		status |= mstatusMPIE
	} else {
		status &^= mstatusMPIE
	}
	status &^= mstatusMIE
	status |= mstatusMPPMask
	c.csr[csrMstatus] = status

	tvec := c.csr[csrMtvec]
	if tvec == 0 {
		c.state = StateHalted
		return
	}
	if tvec&1 != 0 {
		// Vectored mode: base + 4*cause.
		c.pc = (tvec &^ 1) + 4*cause
	} else {
		c.pc = tvec
	}
}

// mret restores PC and MIE from the trap-entry snapshot, per spec.md §4.1.
func (c *CPU) mret() {
	status := c.csr[csrMstatus]
	if status&mstatusMPIE != 0 {
		status |= mstatusMIE
	} else {
		status &^= mstatusMIE
	}
	status |= mstatusMPIE
	// MPP is left at M: this core has no other privilege mode to return to.
	c.csr[csrMstatus] = status
	c.pc = c.csr[csrMepc]
}

// csr.go - sparse CSR file with per-register read/write semantics

package main

// csrRead returns the current value of CSR number csr, or ok=false if the
// number is not one of the registers this core recognizes (spec.md §3/§9:
// "unknown CSRs return IllegalInstruction on any access").
func (c *CPU) csrRead(csr uint16) (uint64, bool) {
	switch csr {
	case csrMhartid:
		return 0, true
	case csrMisa:
		return misaRV64IMAC, true
	case csrCycle, csrMcycle:
		return c.csr[csrMcycle], true
	case csrMinstret:
		return c.instret, true
	case csrTime, csrCycleH, csrTimeH:
		if csr == csrTime {
			return c.clint.MTime(), true
		}
		return c.clint.MTime() >> 32, true
	case csrMstatus, csrMtvec, csrMscratch, csrMepc, csrMcause, csrMtval, csrMie:
		return c.csr[csr], true
	case csrMip:
		return c.readMip(), true
	}
	return 0, false
}

// readMip assembles the live interrupt-pending bits from the devices that
// back them, rather than storing mip as an independent shadow copy.
func (c *CPU) readMip() uint64 {
	var v uint64
	if c.uart.InterruptPending() || (c.virtio != nil && c.virtio.InterruptPending()) {
		v |= mipMEIP
	}
	if c.clint.SoftwarePending() {
		v |= mipMSIP
	}
	if c.clint.TimerPending() {
		v |= mipMTIP
	}
	return v
}

// csrWrite applies a new value to CSR number csr. ok=false means either the
// CSR is unrecognized or it is read-only (spec.md §4.1's Zicsr rule: "Writes
// to read-only CSRs raise IllegalInstruction").
func (c *CPU) csrWrite(csr uint16, value uint64) bool {
	switch csr {
	case csrMhartid, csrMisa, csrCycle, csrMcycle, csrMinstret, csrTime, csrCycleH, csrTimeH, csrMip:
		return false // read-only in this core: hardwired, monotonic, or device-derived
	case csrMstatus:
		c.csr[csr] = value & (mstatusMIE | mstatusMPIE | mstatusMPPMask)
		return true
	case csrMtvec, csrMscratch, csrMcause, csrMtval, csrMie:
		c.csr[csr] = value
		return true
	case csrMepc:
		c.csr[csr] = value &^ 1 // IALIGN=16 with the C extension enabled
		return true
	}
	return false
}

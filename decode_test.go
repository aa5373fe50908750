package main

import "testing"

func TestImmI_SignExtends(t *testing.T) {
	// ADDI x1, x0, -1: imm field is all ones.
	insn := encodeIType(opOpImm, 1, 0, 0, -1)
	if got := immI(insn); got != -1 {
		t.Fatalf("immI = %d, want -1", got)
	}
}

func TestImmS_RoundTrip(t *testing.T) {
	insn := encodeSType(opStore, 0b011, 5, 6, -100)
	if got := immS(insn); got != -100 {
		t.Fatalf("immS = %d, want -100", got)
	}
}

func TestImmB_RoundTrip(t *testing.T) {
	for _, want := range []int64{4, -4, 2046, -2048} {
		insn := encodeBType(opBranch, 0, 1, 2, want)
		if got := immB(insn); got != want {
			t.Fatalf("immB round trip of %d = %d", want, got)
		}
	}
}

func TestImmJ_RoundTrip(t *testing.T) {
	for _, want := range []int64{4, -4, 1<<20 - 2, -(1 << 20)} {
		insn := encodeJType(opJal, 1, want)
		if got := immJ(insn); got != want {
			t.Fatalf("immJ round trip of %d = %d", want, got)
		}
	}
}

func TestImmU_ClearsLow12Bits(t *testing.T) {
	insn := encodeUType(opLui, 1, 0x12345000)
	if got := immU(insn); got != 0x12345000 {
		t.Fatalf("immU = 0x%x, want 0x12345000", got)
	}
}

func TestFieldExtraction(t *testing.T) {
	insn := encodeRType(opOp, 7, 0b101, 8, 9, 0b0100000)
	if fieldOpcode(insn) != opOp {
		t.Fatalf("opcode = 0x%x, want opOp", fieldOpcode(insn))
	}
	if fieldRd(insn) != 7 {
		t.Fatalf("rd = %d, want 7", fieldRd(insn))
	}
	if fieldFunct3(insn) != 0b101 {
		t.Fatalf("funct3 = 0b%b, want 0b101", fieldFunct3(insn))
	}
	if fieldRs1(insn) != 8 {
		t.Fatalf("rs1 = %d, want 8", fieldRs1(insn))
	}
	if fieldRs2(insn) != 9 {
		t.Fatalf("rs2 = %d, want 9", fieldRs2(insn))
	}
	if fieldFunct7(insn) != 0b0100000 {
		t.Fatalf("funct7 = 0b%b, want 0b0100000", fieldFunct7(insn))
	}
}

func TestEncodeJAL_MatchesJTypeDecode(t *testing.T) {
	insn := uint32(encodeJAL(1, 0x7FE))
	if immJ(insn) != 0x7FE {
		t.Fatalf("encodeJAL round trip = 0x%x, want 0x7FE", immJ(insn))
	}
}

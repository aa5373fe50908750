// decode.go - purely combinational field/immediate extraction for the 32-bit encoding

package main

// Opcode (bits [6:0]) values used by the dispatch in execute.go.
const (
	opLoad    = 0b0000011
	opMiscMem = 0b0001111
	opOpImm   = 0b0010011
	opAuipc   = 0b0010111
	opOpImm32 = 0b0011011
	opStore   = 0b0100011
	opAMO     = 0b0101111
	opOp      = 0b0110011
	opLui     = 0b0110111
	opOp32    = 0b0111011
	opBranch  = 0b1100011
	opJalr    = 0b1100111
	opJal     = 0b1101111
	opSystem  = 0b1110011
)

func fieldOpcode(insn uint32) uint32 { return insn & 0x7f }
func fieldRd(insn uint32) uint32     { return (insn >> 7) & 0x1f }
func fieldFunct3(insn uint32) uint32 { return (insn >> 12) & 0x7 }
func fieldRs1(insn uint32) uint32    { return (insn >> 15) & 0x1f }
func fieldRs2(insn uint32) uint32    { return (insn >> 20) & 0x1f }
func fieldFunct7(insn uint32) uint32 { return (insn >> 25) & 0x7f }
func fieldFunct5(insn uint32) uint32 { return (insn >> 27) & 0x1f }

func signExtend(v uint64, bits uint) int64 {
	shift := 64 - bits
	return int64(v<<shift) >> shift
}

func immI(insn uint32) int64 {
	return signExtend(uint64(insn>>20), 12)
}

func immS(insn uint32) int64 {
	v := (insn>>7)&0x1f | ((insn>>25)&0x7f)<<5
	return signExtend(uint64(v), 12)
}

func immB(insn uint32) int64 {
	v := ((insn>>8)&0xf)<<1 | ((insn>>25)&0x3f)<<5 | ((insn>>7)&0x1)<<11 | ((insn>>31)&0x1)<<12
	return signExtend(uint64(v), 13)
}

func immU(insn uint32) int64 {
	return int64(int32(insn & 0xFFFFF000))
}

func immJ(insn uint32) int64 {
	v := ((insn>>21)&0x3ff)<<1 | ((insn>>20)&0x1)<<11 | ((insn>>12)&0xff)<<12 | ((insn>>31)&0x1)<<20
	return signExtend(uint64(v), 21)
}

func shamt64(insn uint32) uint32 { return (insn >> 20) & 0x3f }
func shamt32(insn uint32) uint32 { return (insn >> 20) & 0x1f }

// The following encodeXType helpers build a 32-bit instruction word from its
// fields. They are used both to synthesize the boot ROM's reset-vector shim
// and to expand 16-bit compressed encodings into their architecturally
// equivalent 32-bit form (spec.md §4.1: "The C-extension decoder expands
// each 16-bit form to the architecturally equivalent 32-bit form before
// execution").

func encodeRType(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return opcode | rd<<7 | funct3<<12 | rs1<<15 | rs2<<20 | funct7<<25
}

func encodeIType(opcode, rd, funct3, rs1 uint32, imm int64) uint32 {
	return opcode | rd<<7 | funct3<<12 | rs1<<15 | (uint32(imm)&0xfff)<<20
}

func encodeSType(opcode, funct3, rs1, rs2 uint32, imm int64) uint32 {
	u := uint32(imm)
	return opcode | (u&0x1f)<<7 | funct3<<12 | rs1<<15 | rs2<<20 | ((u>>5)&0x7f)<<25
}

func encodeBType(opcode, funct3, rs1, rs2 uint32, imm int64) uint32 {
	u := uint32(imm)
	bit11 := (u >> 11) & 1
	bit4_1 := (u >> 1) & 0xf
	bit10_5 := (u >> 5) & 0x3f
	bit12 := (u >> 12) & 1
	return opcode | bit11<<7 | bit4_1<<8 | funct3<<12 | rs1<<15 | rs2<<20 | bit10_5<<25 | bit12<<31
}

func encodeUType(opcode, rd uint32, imm int64) uint32 {
	return opcode | rd<<7 | (uint32(imm) & 0xFFFFF000)
}

func encodeJType(opcode, rd uint32, imm int64) uint32 {
	u := uint32(imm)
	imm20 := (u >> 20) & 1
	imm10_1 := (u >> 1) & 0x3ff
	imm11 := (u >> 11) & 1
	imm19_12 := (u >> 12) & 0xff
	return opcode | rd<<7 | imm19_12<<12 | imm11<<20 | imm10_1<<21 | imm20<<31
}

// encodeJAL builds a 32-bit JAL instruction: rd <- pc+4, pc <- pc+offset.
// The boot ROM shim does not use it: a JAL's ±1 MiB reach is too short, so
// the shim is built from AUIPC+JALR instead.
func encodeJAL(rd uint32, offset int64) uint64 {
	return uint64(encodeJType(opJal, rd, offset))
}

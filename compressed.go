// compressed.go - RV64C 16-bit instruction expansion to equivalent 32-bit encodings

package main

// cReg maps a 3-bit compressed register field (quadrants 0 and 1's rs1'/rs2'/rd')
// to its full 5-bit register number: x8..x15.
func cReg(field uint16) uint32 {
	return 8 + uint32(field)
}

// expandCompressed decodes a 16-bit instruction and returns the
// architecturally equivalent 32-bit encoding. illegal=true means the
// encoding is unimplemented or a defined-reserved form (spec.md §4.1).
func expandCompressed(insn uint16) (expanded uint32, illegal bool) {
	if insn == 0 {
		return 0, true
	}
	quadrant := insn & 0x3
	funct3 := (insn >> 13) & 0x7

	switch quadrant {
	case 0:
		return expandQuadrant0(insn, funct3)
	case 1:
		return expandQuadrant1(insn, funct3)
	case 2:
		return expandQuadrant2(insn, funct3)
	}
	return 0, true
}

func expandQuadrant0(insn uint16, funct3 uint16) (uint32, bool) {
	rdp := cReg((insn >> 2) & 0x7)
	rs1p := cReg((insn >> 7) & 0x7)
	rs2p := cReg((insn >> 2) & 0x7)

	switch funct3 {
	case 0b000: // C.ADDI4SPN
		nzuimm := ((insn>>7)&0xf)<<6 | ((insn>>11)&0x3)<<4 | ((insn>>5)&0x1)<<3 | ((insn>>6)&0x1)<<2
		if nzuimm == 0 {
			return 0, true
		}
		return encodeIType(opOpImm, rdp, 0, 2, int64(nzuimm)), false
	case 0b010: // C.LW
		off := ((insn>>6)&0x1)<<2 | ((insn>>10)&0x7)<<3 | ((insn>>5)&0x1)<<6
		return encodeIType(opLoad, rdp, 0b010, rs1p, int64(off)), false
	case 0b011: // C.LD
		off := ((insn>>10)&0x7)<<3 | ((insn>>5)&0x3)<<6
		return encodeIType(opLoad, rdp, 0b011, rs1p, int64(off)), false
	case 0b110: // C.SW
		off := ((insn>>6)&0x1)<<2 | ((insn>>10)&0x7)<<3 | ((insn>>5)&0x1)<<6
		return encodeSType(opStore, 0b010, rs1p, rs2p, int64(off)), false
	case 0b111: // C.SD
		off := ((insn>>10)&0x7)<<3 | ((insn>>5)&0x3)<<6
		return encodeSType(opStore, 0b011, rs1p, rs2p, int64(off)), false
	}
	return 0, true // C.FLD/C.FSD (001/101) and reserved (100): no float support
}

func expandQuadrant1(insn uint16, funct3 uint16) (uint32, bool) {
	rd := uint32((insn >> 7) & 0x1f)
	imm6 := int64(signExtend(uint64((insn>>12)&1)<<5|uint64((insn>>2)&0x1f), 6))

	switch funct3 {
	case 0b000: // C.ADDI / C.NOP
		return encodeIType(opOpImm, rd, 0, rd, imm6), false
	case 0b001: // C.ADDIW
		if rd == 0 {
			return 0, true // reserved encoding
		}
		return encodeIType(opOpImm32, rd, 0, rd, imm6), false
	case 0b010: // C.LI
		if rd == 0 {
			return 0, true
		}
		return encodeIType(opOpImm, rd, 0, 0, imm6), false
	case 0b011:
		if rd == 2 { // C.ADDI16SP
			nz := int64((insn>>12)&1)<<9 | int64((insn>>3)&0x3)<<7 | int64((insn>>5)&0x1)<<6 | int64((insn>>2)&0x1)<<5 | int64((insn>>6)&0x1)<<4
			nz = int64(signExtend(uint64(nz), 10))
			if nz == 0 {
				return 0, true
			}
			return encodeIType(opOpImm, 2, 0, 2, nz), false
		}
		// C.LUI
		if rd == 0 {
			return 0, true
		}
		nzimm := int64((insn>>12)&1)<<17 | int64((insn>>2)&0x1f)<<12
		nzimm = int64(signExtend(uint64(nzimm), 18))
		if nzimm == 0 {
			return 0, true
		}
		return encodeUType(opLui, rd, nzimm), false
	case 0b100:
		rdp := cReg((insn >> 7) & 0x7)
		rs2p := cReg((insn >> 2) & 0x7)
		group := (insn >> 10) & 0x3
		switch group {
		case 0b00: // C.SRLI
			sh := int64((insn>>12)&1)<<5 | int64((insn>>2)&0x1f)
			return encodeIType(opOpImm, rdp, 0b101, rdp, sh), false
		case 0b01: // C.SRAI
			sh := int64((insn>>12)&1)<<5 | int64((insn>>2)&0x1f)
			return encodeRType(opOpImm, rdp, 0b101, rdp, uint32(sh), 0b0100000), false
		case 0b10: // C.ANDI
			imm := int64(signExtend(uint64((insn>>12)&1)<<5|uint64((insn>>2)&0x1f), 6))
			return encodeIType(opOpImm, rdp, 0b111, rdp, imm), false
		case 0b11:
			bit12 := (insn >> 12) & 1
			funct2 := (insn >> 5) & 0x3
			if bit12 == 0 {
				switch funct2 {
				case 0b00: // C.SUB
					return encodeRType(opOp, rdp, 0b000, rdp, rs2p, 0b0100000), false
				case 0b01: // C.XOR
					return encodeRType(opOp, rdp, 0b100, rdp, rs2p, 0), false
				case 0b10: // C.OR
					return encodeRType(opOp, rdp, 0b110, rdp, rs2p, 0), false
				case 0b11: // C.AND
					return encodeRType(opOp, rdp, 0b111, rdp, rs2p, 0), false
				}
			} else {
				switch funct2 {
				case 0b00: // C.SUBW
					return encodeRType(opOp32, rdp, 0b000, rdp, rs2p, 0b0100000), false
				case 0b01: // C.ADDW
					return encodeRType(opOp32, rdp, 0b000, rdp, rs2p, 0), false
				}
				return 0, true // C.MULW/reserved: no M-extension compressed aliases defined
			}
		}
		return 0, true
	case 0b101: // C.J
		off := decodeCJOffset(insn)
		return encodeJType(opJal, 0, off), false
	case 0b110: // C.BEQZ
		off := decodeCBOffset(insn)
		rs1p := cReg((insn >> 7) & 0x7)
		return encodeBType(opBranch, 0b000, rs1p, 0, off), false
	case 0b111: // C.BNEZ
		off := decodeCBOffset(insn)
		rs1p := cReg((insn >> 7) & 0x7)
		return encodeBType(opBranch, 0b001, rs1p, 0, off), false
	}
	return 0, true
}

func expandQuadrant2(insn uint16, funct3 uint16) (uint32, bool) {
	rd := uint32((insn >> 7) & 0x1f)
	rs2 := uint32((insn >> 2) & 0x1f)

	switch funct3 {
	case 0b000: // C.SLLI
		sh := int64((insn>>12)&1)<<5 | int64((insn>>2)&0x1f)
		return encodeIType(opOpImm, rd, 0b001, rd, sh), false
	case 0b010: // C.LWSP
		if rd == 0 {
			return 0, true
		}
		off := ((insn>>4)&0x7)<<2 | ((insn>>12)&0x1)<<5 | ((insn>>2)&0x3)<<6
		return encodeIType(opLoad, rd, 0b010, 2, int64(off)), false
	case 0b011: // C.LDSP
		if rd == 0 {
			return 0, true
		}
		off := ((insn>>5)&0x3)<<3 | ((insn>>12)&0x1)<<5 | ((insn>>2)&0x7)<<6
		return encodeIType(opLoad, rd, 0b011, 2, int64(off)), false
	case 0b100:
		bit12 := (insn >> 12) & 1
		if bit12 == 0 {
			if rs2 == 0 { // C.JR
				if rd == 0 {
					return 0, true
				}
				return encodeIType(opJalr, 0, 0, rd, 0), false
			}
			// C.MV
			return encodeRType(opOp, rd, 0, 0, rs2, 0), false
		}
		if rd == 0 && rs2 == 0 { // C.EBREAK
			return uint32(0x00100073), false
		}
		if rs2 == 0 { // C.JALR
			return encodeIType(opJalr, 1, 0, rd, 0), false
		}
		// C.ADD
		return encodeRType(opOp, rd, 0, rd, rs2, 0), false
	case 0b110: // C.SWSP
		off := ((insn>>9)&0xf)<<2 | ((insn>>7)&0x3)<<6
		return encodeSType(opStore, 0b010, 2, rs2, int64(off)), false
	case 0b111: // C.SDSP
		off := ((insn>>10)&0x7)<<3 | ((insn>>7)&0x7)<<6
		return encodeSType(opStore, 0b011, 2, rs2, int64(off)), false
	}
	return 0, true // C.FLDSP/C.FSDSP (001/101): no float support
}

// decodeCJOffset extracts the 11-bit signed jump offset used by C.J/C.JAL.
func decodeCJOffset(insn uint16) int64 {
	v := uint64((insn>>3)&0x7)<<1 |
		uint64((insn>>11)&0x1)<<4 |
		uint64((insn>>2)&0x1)<<5 |
		uint64((insn>>7)&0x1)<<6 |
		uint64((insn>>6)&0x1)<<7 |
		uint64((insn>>9)&0x3)<<8 |
		uint64((insn>>8)&0x1)<<10 |
		uint64((insn>>12)&0x1)<<11
	return signExtend(v, 12)
}

// decodeCBOffset extracts the 8-bit signed branch offset used by C.BEQZ/C.BNEZ.
func decodeCBOffset(insn uint16) int64 {
	v := uint64((insn>>3)&0x3)<<1 |
		uint64((insn>>10)&0x3)<<3 |
		uint64((insn>>2)&0x1)<<5 |
		uint64((insn>>5)&0x3)<<6 |
		uint64((insn>>12)&0x1)<<8
	return signExtend(v, 9)
}

package chip8

// Decode turns the two bytes of a fetched opcode (big-endian: msb, lsb)
// into an Instruction. Every undefined bit pattern yields a
// MalformedInstructionError carrying the offending bytes.
func Decode(msb, lsb byte) (Instruction, error) {
	a := msb >> 4
	x := RegIndex(msb & 0x0F)
	y := RegIndex(lsb >> 4)
	n := lsb & 0x0F
	kk := lsb
	nnn := uint16(msb&0x0F)<<8 | uint16(lsb)

	switch a {
	case 0x0:
		switch lsb {
		case 0xE0:
			return Instruction{Kind: KindCLS}, nil
		case 0xEE:
			return Instruction{Kind: KindRET}, nil
		default:
			return Instruction{}, &MalformedInstructionError{MSB: msb, LSB: lsb}
		}
	case 0x1:
		return Instruction{Kind: KindJP, Addr: nnn}, nil
	case 0x2:
		return Instruction{Kind: KindCALL, Addr: nnn}, nil
	case 0x3:
		return Instruction{Kind: KindSE, X: x, RHS: Operand{Byte: kk}}, nil
	case 0x4:
		return Instruction{Kind: KindSNE, X: x, RHS: Operand{Byte: kk}}, nil
	case 0x5:
		if n != 0x0 {
			return Instruction{}, &MalformedInstructionError{MSB: msb, LSB: lsb}
		}
		return Instruction{Kind: KindSE, X: x, RHS: Operand{IsRegister: true, Reg: y}}, nil
	case 0x6:
		return Instruction{Kind: KindLD, X: x, RHS: Operand{Byte: kk}}, nil
	case 0x7:
		return Instruction{Kind: KindADD, X: x, RHS: Operand{Byte: kk}}, nil
	case 0x8:
		switch n {
		case 0x0:
			return Instruction{Kind: KindLD, X: x, RHS: Operand{IsRegister: true, Reg: y}}, nil
		case 0x1:
			return Instruction{Kind: KindOR, X: x, Y: y}, nil
		case 0x2:
			return Instruction{Kind: KindAND, X: x, Y: y}, nil
		case 0x3:
			return Instruction{Kind: KindXOR, X: x, Y: y}, nil
		case 0x4:
			return Instruction{Kind: KindADD, X: x, RHS: Operand{IsRegister: true, Reg: y}}, nil
		case 0x5:
			return Instruction{Kind: KindSUB, X: x, Y: y}, nil
		case 0x6:
			return Instruction{Kind: KindSHR, X: x, Y: y}, nil
		case 0x7:
			return Instruction{Kind: KindSUBN, X: x, Y: y}, nil
		case 0xE:
			return Instruction{Kind: KindSHL, X: x, Y: y}, nil
		default:
			return Instruction{}, &MalformedInstructionError{MSB: msb, LSB: lsb}
		}
	case 0x9:
		if n != 0x0 {
			return Instruction{}, &MalformedInstructionError{MSB: msb, LSB: lsb}
		}
		return Instruction{Kind: KindSNE, X: x, RHS: Operand{IsRegister: true, Reg: y}}, nil
	case 0xA:
		return Instruction{Kind: KindLDI, Addr: nnn}, nil
	case 0xB:
		return Instruction{Kind: KindJPV0, Addr: nnn}, nil
	case 0xC:
		return Instruction{Kind: KindRND, X: x, KK: kk}, nil
	case 0xD:
		return Instruction{Kind: KindDRW, X: x, Y: y, N: n}, nil
	case 0xE:
		switch lsb {
		case 0x9E:
			return Instruction{Kind: KindSKP, X: x}, nil
		case 0xA1:
			return Instruction{Kind: KindSKNP, X: x}, nil
		default:
			return Instruction{}, &MalformedInstructionError{MSB: msb, LSB: lsb}
		}
	case 0xF:
		switch lsb {
		case 0x07:
			return Instruction{Kind: KindLDFromDT, X: x}, nil
		case 0x0A:
			return Instruction{Kind: KindLDK, X: x}, nil
		case 0x15:
			return Instruction{Kind: KindLDToDT, X: x}, nil
		case 0x18:
			return Instruction{Kind: KindLDST, X: x}, nil
		case 0x1E:
			return Instruction{Kind: KindADDI, X: x}, nil
		case 0x29:
			return Instruction{Kind: KindLDF, X: x}, nil
		case 0x33:
			return Instruction{Kind: KindLDBCD, X: x}, nil
		case 0x55:
			return Instruction{Kind: KindLDARR, X: x}, nil
		case 0x65:
			return Instruction{Kind: KindRDARR, X: x}, nil
		default:
			return Instruction{}, &MalformedInstructionError{MSB: msb, LSB: lsb}
		}
	default:
		return Instruction{}, &MalformedInstructionError{MSB: msb, LSB: lsb}
	}
}

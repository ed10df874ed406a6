package chip8

import "fmt"

// Kind tags which opcode an Instruction represents.
type Kind int

const (
	KindCLS Kind = iota
	KindRET
	KindJP
	KindCALL
	KindSE
	KindSNE
	KindLD
	KindADD
	KindOR
	KindAND
	KindXOR
	KindSUB
	KindSHR
	KindSUBN
	KindSHL
	KindLDI
	KindJPV0
	KindRND
	KindDRW
	KindSKP
	KindSKNP
	KindLDFromDT
	KindLDToDT
	KindLDST
	KindLDK
	KindADDI
	KindLDF
	KindLDBCD
	KindLDARR
	KindRDARR
)

var kindNames = map[Kind]string{
	KindCLS:      "CLS",
	KindRET:      "RET",
	KindJP:       "JP",
	KindCALL:     "CALL",
	KindSE:       "SE",
	KindSNE:      "SNE",
	KindLD:       "LD",
	KindADD:      "ADD",
	KindOR:       "OR",
	KindAND:      "AND",
	KindXOR:      "XOR",
	KindSUB:      "SUB",
	KindSHR:      "SHR",
	KindSUBN:     "SUBN",
	KindSHL:      "SHL",
	KindLDI:      "LDI",
	KindJPV0:     "JPV0",
	KindRND:      "RND",
	KindDRW:      "DRW",
	KindSKP:      "SKP",
	KindSKNP:     "SKNP",
	KindLDFromDT: "LD_FROM_DT",
	KindLDToDT:   "LD_TO_DT",
	KindLDST:     "LDST",
	KindLDK:      "LDK",
	KindADDI:     "ADDI",
	KindLDF:      "LDF",
	KindLDBCD:    "LDBCD",
	KindLDARR:    "LDARR",
	KindRDARR:    "RDARR",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Operand is the "byte-or-register" variant used by LD, ADD, SE, and SNE:
// the right-hand operand is either an immediate byte or another V-register.
type Operand struct {
	IsRegister bool
	Reg        RegIndex
	Byte       byte
}

// Resolve returns the operand's value given the current register file.
func (o Operand) Resolve(rf *RegisterFile) byte {
	if o.IsRegister {
		return rf.Get(o.Reg)
	}
	return o.Byte
}

// Instruction is a decoded CHIP-8 opcode: a tagged variant over every
// opcode in the decode table, carrying only the operand fields its Kind
// uses.
type Instruction struct {
	Kind Kind
	X, Y RegIndex
	N    byte    // sprite row count (DRW)
	Addr uint16  // 12-bit address (JP, CALL, LDI, JPV0)
	RHS  Operand // byte-or-register right-hand side (SE, SNE, LD, ADD)
	KK   byte    // immediate byte (RND)
}

func (i Instruction) String() string {
	switch i.Kind {
	case KindCLS, KindRET:
		return i.Kind.String()
	case KindJP, KindCALL, KindLDI, KindJPV0:
		return fmt.Sprintf("%s 0x%03X", i.Kind, i.Addr)
	case KindDRW:
		return fmt.Sprintf("%s V%X, V%X, %d", i.Kind, i.X, i.Y, i.N)
	case KindSE, KindSNE, KindLD, KindADD:
		if i.RHS.IsRegister {
			return fmt.Sprintf("%s V%X, V%X", i.Kind, i.X, i.RHS.Reg)
		}
		return fmt.Sprintf("%s V%X, 0x%02X", i.Kind, i.X, i.RHS.Byte)
	case KindRND:
		return fmt.Sprintf("%s V%X, 0x%02X", i.Kind, i.X, i.KK)
	case KindOR, KindAND, KindXOR, KindSUB, KindSUBN:
		return fmt.Sprintf("%s V%X, V%X", i.Kind, i.X, i.Y)
	case KindSHR, KindSHL, KindSKP, KindSKNP, KindLDFromDT, KindLDToDT,
		KindLDST, KindLDK, KindADDI, KindLDF, KindLDBCD, KindLDARR, KindRDARR:
		return fmt.Sprintf("%s V%X", i.Kind, i.X)
	default:
		return i.Kind.String()
	}
}

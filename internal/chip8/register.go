package chip8

import "fmt"

// RegIndex names one of the sixteen general-purpose V-registers, V0..VF.
type RegIndex uint8

// VF is the flag register: overwritten by the arithmetic, shift, and
// sprite-draw opcodes after they complete.
const VF RegIndex = 0xF

// RegisterFile holds the sixteen 8-bit V-registers plus the special
// I/PC/SP/DT/ST registers. PC and I are stored as 16 bits. The fetch and the
// opcodes that access memory through I bounds-check the address and fail
// with OutOfBoundsMemoryError past the end of RAM; LDI masks its operand to
// 12 bits and JPV0 wraps its target modulo 4096.
type RegisterFile struct {
	v  [16]byte
	I  uint16
	PC uint16
	SP uint8
	DT uint8
	ST uint8
}

// Get returns the current value of V-register r.
func (rf *RegisterFile) Get(r RegIndex) byte {
	return rf.v[r&0xF]
}

// Set writes V-register r. Writes to VF are always permitted, whether they
// come from an explicit LD or from a flag-producing opcode's own side effect.
func (rf *RegisterFile) Set(r RegIndex, val byte) {
	rf.v[r&0xF] = val
}

// Reset returns the register file to its power-on state: all V-registers,
// I, SP, DT, ST zeroed, and PC at the start of the program region.
func (rf *RegisterFile) Reset() {
	rf.v = [16]byte{}
	rf.I = 0
	rf.PC = ramProgStart
	rf.SP = 0
	rf.DT = 0
	rf.ST = 0
}

// String renders a one-line register dump: PC, I, SP, DT, ST, then V0..VF.
func (rf *RegisterFile) String() string {
	return fmt.Sprintf(
		"PC=%04X I=%04X SP=%02X DT=%02X ST=%02X | V0=%02X V1=%02X V2=%02X V3=%02X V4=%02X V5=%02X V6=%02X V7=%02X V8=%02X V9=%02X VA=%02X VB=%02X VC=%02X VD=%02X VE=%02X VF=%02X",
		rf.PC, rf.I, rf.SP, rf.DT, rf.ST,
		rf.v[0x0], rf.v[0x1], rf.v[0x2], rf.v[0x3],
		rf.v[0x4], rf.v[0x5], rf.v[0x6], rf.v[0x7],
		rf.v[0x8], rf.v[0x9], rf.v[0xA], rf.v[0xB],
		rf.v[0xC], rf.v[0xD], rf.v[0xE], rf.v[0xF],
	)
}

// Snapshot returns a copy of the 16 V-registers, safe to hand to a debugger
// caller without exposing the live array.
func (rf *RegisterFile) Snapshot() [16]byte {
	return rf.v
}

package chip8

// Executor applies a decoded Instruction to a RegisterFile, Memory,
// Keyboard, and Screen. It owns nothing itself beyond the RND source — all
// mutated state is passed in per call, the way the teacher's per-opcode
// methods on *VM mutated vm fields directly, generalized here to the
// tagged Instruction dispatch.
type Executor struct {
	rng Rand
}

// Execute runs one decoded instruction. Instructions that do not own PC
// (see cpu.go's instructionOwnsPC) never touch reg.PC directly here except
// to apply an extra +2 skip (SE/SNE/SKP/SKNP on a true condition) or a -2
// retry (LDK with no key pressed) — CPU.ExecuteCycle applies the blanket
// +2 on top.
func (e *Executor) Execute(instr Instruction, reg *RegisterFile, ram *Memory, kb Keyboard, scr *Screen) error {
	switch instr.Kind {
	case KindCLS:
		scr.Clear()
	case KindRET:
		return e.execRET(reg, ram)
	case KindJP:
		reg.PC = instr.Addr
	case KindCALL:
		return e.execCALL(instr, reg, ram)
	case KindSE:
		e.execSkipIf(instr, reg, reg.Get(instr.X) == instr.RHS.Resolve(reg))
	case KindSNE:
		e.execSkipIf(instr, reg, reg.Get(instr.X) != instr.RHS.Resolve(reg))
	case KindLD:
		reg.Set(instr.X, instr.RHS.Resolve(reg))
	case KindADD:
		e.execADD(instr, reg)
	case KindOR:
		reg.Set(instr.X, reg.Get(instr.X)|reg.Get(instr.Y))
	case KindAND:
		reg.Set(instr.X, reg.Get(instr.X)&reg.Get(instr.Y))
	case KindXOR:
		reg.Set(instr.X, reg.Get(instr.X)^reg.Get(instr.Y))
	case KindSUB:
		e.execSUB(instr.X, reg.Get(instr.X), reg.Get(instr.Y), reg)
	case KindSUBN:
		e.execSUB(instr.X, reg.Get(instr.Y), reg.Get(instr.X), reg)
	case KindSHR:
		e.execSHR(instr, reg)
	case KindSHL:
		e.execSHL(instr, reg)
	case KindLDI:
		reg.I = instr.Addr & 0x0FFF
	case KindJPV0:
		reg.PC = (instr.Addr + uint16(reg.Get(0))) % ramSize
	case KindRND:
		reg.Set(instr.X, e.rng.Byte()&instr.KK)
	case KindDRW:
		return e.execDRW(instr, reg, ram, scr)
	case KindSKP:
		e.execSkipIf(instr, reg, kb.IsPressed(reg.Get(instr.X)))
	case KindSKNP:
		e.execSkipIf(instr, reg, !kb.IsPressed(reg.Get(instr.X)))
	case KindLDFromDT:
		reg.Set(instr.X, reg.DT)
	case KindLDToDT:
		reg.DT = reg.Get(instr.X)
	case KindLDST:
		reg.ST = reg.Get(instr.X)
	case KindLDK:
		e.execLDK(instr, reg, kb)
	case KindADDI:
		// uint16 addition wraps mod 65536 on its own.
		reg.I += uint16(reg.Get(instr.X))
	case KindLDF:
		reg.I = FontBase + uint16(fontGlyphSize)*uint16(reg.Get(instr.X)&0x0F)
	case KindLDBCD:
		return e.execLDBCD(instr, reg, ram)
	case KindLDARR:
		return e.execLDARR(instr, reg, ram)
	case KindRDARR:
		return e.execRDARR(instr, reg, ram)
	}
	return nil
}

// execSkipIf applies the extra +2 that SE/SNE/SKP/SKNP add on top of the
// cycle's blanket +2 when their condition holds.
func (e *Executor) execSkipIf(instr Instruction, reg *RegisterFile, condition bool) {
	if condition {
		reg.PC += 2
	}
}

func (e *Executor) execADD(instr Instruction, reg *RegisterFile) {
	if !instr.RHS.IsRegister {
		// 7xkk: add immediate, no flag.
		reg.Set(instr.X, reg.Get(instr.X)+instr.RHS.Byte)
		return
	}
	// 8xy4: add register, VF <- carry. Compute before writing so that
	// ADD VF, VF stores the carry, not the sum.
	vx, vy := uint16(reg.Get(instr.X)), uint16(instr.RHS.Resolve(reg))
	sum := vx + vy
	result := byte(sum)
	carry := byte(0)
	if sum > 0xFF {
		carry = 1
	}
	reg.Set(instr.X, result)
	reg.Set(VF, carry)
}

// execSUB computes dst <- a - b (mod 256), VF <- 1 if no borrow occurred,
// else 0. SUBN calls this with a and b swapped.
func (e *Executor) execSUB(dst RegIndex, a, b byte, reg *RegisterFile) {
	borrow := byte(0)
	if a < b {
		borrow = 1
	}
	result := a - b
	reg.Set(dst, result)
	if borrow == 1 {
		reg.Set(VF, 0)
	} else {
		reg.Set(VF, 1)
	}
}

func (e *Executor) execSHR(instr Instruction, reg *RegisterFile) {
	v := reg.Get(instr.X)
	outBit := v & 0x01
	reg.Set(instr.X, v>>1)
	reg.Set(VF, outBit)
}

func (e *Executor) execSHL(instr Instruction, reg *RegisterFile) {
	v := reg.Get(instr.X)
	outBit := (v & 0x80) >> 7
	reg.Set(instr.X, v<<1)
	reg.Set(VF, outBit)
}

func (e *Executor) execCALL(instr Instruction, reg *RegisterFile, ram *Memory) error {
	// CALL is excluded from the cycle's post-increment (see
	// cpu.go:instructionOwnsPC); it must push the return address of the
	// instruction after itself, i.e. the current PC + 2.
	if err := pushReturnAddr(ram, &reg.SP, reg.PC+2); err != nil {
		return err
	}
	reg.PC = instr.Addr
	return nil
}

func (e *Executor) execRET(reg *RegisterFile, ram *Memory) error {
	pc, err := popReturnAddr(ram, &reg.SP)
	if err != nil {
		return err
	}
	reg.PC = pc
	return nil
}

func (e *Executor) execLDK(instr Instruction, reg *RegisterFile, kb Keyboard) {
	for key := byte(0); key <= 0xF; key++ {
		if kb.IsPressed(key) {
			reg.Set(instr.X, key)
			return
		}
	}
	// No key pressed: cancel the cycle's impending blanket +2 so this same
	// LDK is retried next cycle (busy-wait for a keypress).
	reg.PC -= 2
}

func (e *Executor) execLDBCD(instr Instruction, reg *RegisterFile, ram *Memory) error {
	if int(reg.I)+2 >= ramSize {
		return &OutOfBoundsMemoryError{Addr: int(reg.I) + 2}
	}
	val := reg.Get(instr.X)
	hundreds := val / 100
	tens := (val / 10) % 10
	ones := val % 10
	ram.Write(reg.I, hundreds)
	ram.Write(reg.I+1, tens)
	ram.Write(reg.I+2, ones)
	return nil
}

func (e *Executor) execLDARR(instr Instruction, reg *RegisterFile, ram *Memory) error {
	if int(reg.I)+int(instr.X) >= ramSize {
		return &OutOfBoundsMemoryError{Addr: int(reg.I) + int(instr.X)}
	}
	for i := RegIndex(0); i <= instr.X; i++ {
		ram.Write(reg.I+uint16(i), reg.Get(i))
	}
	return nil
}

func (e *Executor) execRDARR(instr Instruction, reg *RegisterFile, ram *Memory) error {
	if int(reg.I)+int(instr.X) >= ramSize {
		return &OutOfBoundsMemoryError{Addr: int(reg.I) + int(instr.X)}
	}
	for i := RegIndex(0); i <= instr.X; i++ {
		reg.Set(i, ram.Read(reg.I+uint16(i)))
	}
	return nil
}

func (e *Executor) execDRW(instr Instruction, reg *RegisterFile, ram *Memory, scr *Screen) error {
	if int(reg.I)+int(instr.N) > ramSize {
		return &OutOfBoundsMemoryError{Addr: int(reg.I) + int(instr.N)}
	}
	sprite := make([]byte, instr.N)
	for i := range sprite {
		sprite[i] = ram.Read(reg.I + uint16(i))
	}
	collision, err := scr.Draw(reg.Get(instr.X), reg.Get(instr.Y), sprite)
	if err != nil {
		return err
	}
	if collision {
		reg.Set(VF, 1)
	} else {
		reg.Set(VF, 0)
	}
	return nil
}

// pushReturnAddr stores pc as a big-endian pair at ram[sp:sp+2] and
// advances sp by 2. The stack lives directly in RAM's reserved [0,32) bytes.
func pushReturnAddr(ram *Memory, sp *uint8, pc uint16) error {
	if int(*sp) >= stackAreaSize {
		return errStackOverflow()
	}
	ram.Write(uint16(*sp), byte(pc>>8))
	ram.Write(uint16(*sp)+1, byte(pc))
	*sp += 2
	return nil
}

// popReturnAddr reverses pushReturnAddr.
func popReturnAddr(ram *Memory, sp *uint8) (uint16, error) {
	if *sp < 2 {
		return 0, errStackEmpty()
	}
	*sp -= 2
	msb := ram.Read(uint16(*sp))
	lsb := ram.Read(uint16(*sp) + 1)
	return uint16(msb)<<8 | uint16(lsb), nil
}

package chip8

// CPU couples a RegisterFile and Memory and drives the fetch/decode/execute
// cycle plus the 60 Hz timer tick. It holds no reference to a window or
// event backend; those are supplied per-cycle by the caller.
type CPU struct {
	Registers RegisterFile
	RAM       Memory
	executor  *Executor
}

// NewCPU returns a CPU with PC at the program start, the font table mapped,
// and the given random source wired into RND.
func NewCPU(rng Rand) *CPU {
	cpu := &CPU{executor: &Executor{rng: rng}}
	cpu.Registers.Reset()
	cpu.RAM.LoadFont()
	return cpu
}

// MapProgram validates and loads a ROM image at the program start address.
func (c *CPU) MapProgram(rom []byte) error {
	return c.RAM.LoadROM(rom)
}

// instructionOwnsPC reports whether Kind takes full ownership of PC: JP/JPV0
// jump, CALL pushes the return address and jumps, RET pops the return
// address. All other instructions get PC += 2 from the cycle itself, on top
// of whatever extra advance (skip) the executor already applied.
func instructionOwnsPC(k Kind) bool {
	switch k {
	case KindJP, KindJPV0, KindCALL, KindRET:
		return true
	default:
		return false
	}
}

// ExecuteCycle fetches the instruction at PC, decodes it, executes it
// against keyboard and screen, and applies the PC post-increment policy.
func (c *CPU) ExecuteCycle(kb Keyboard, scr *Screen) error {
	pc := c.Registers.PC
	if int(pc)+1 >= ramSize {
		return &OutOfBoundsMemoryError{Addr: int(pc) + 1}
	}
	msb := c.RAM.Read(pc)
	lsb := c.RAM.Read(pc + 1)

	instr, err := Decode(msb, lsb)
	if err != nil {
		return err
	}

	if err := c.executor.Execute(instr, &c.Registers, &c.RAM, kb, scr); err != nil {
		return err
	}

	if !instructionOwnsPC(instr.Kind) {
		c.Registers.PC += 2
	}
	return nil
}

// PeekNextInstruction decodes the instruction at PC without executing it,
// used by the Debugger Plane's GET next_instruction and by step_next_draw's
// look-ahead for DRW.
func (c *CPU) PeekNextInstruction() (Instruction, error) {
	pc := c.Registers.PC
	if int(pc)+1 >= ramSize {
		return Instruction{}, &OutOfBoundsMemoryError{Addr: int(pc) + 1}
	}
	return Decode(c.RAM.Read(pc), c.RAM.Read(pc+1))
}

// TickTimers decrements DT and ST by one, if each is above zero. Call this
// at 60 Hz, independent of the CPU clock. It returns true on the tick where
// ST transitions from 1 to 0, the signal a sound-timer-to-audio bridge
// (internal/display.PlayBeeps) uses to play exactly one beep per ST run.
func (c *CPU) TickTimers() (soundTriggered bool) {
	if c.Registers.DT > 0 {
		c.Registers.DT--
	}
	if c.Registers.ST > 0 {
		if c.Registers.ST == 1 {
			soundTriggered = true
		}
		c.Registers.ST--
	}
	return soundTriggered
}

package chip8

import (
	"os"
	"sync"
)

// VM is the lock-free, single-threaded convenience wrapper used when no
// debugger is attached (cmd/run.go without --debug).
type VM struct {
	CPU    *CPU
	Screen *Screen
}

// NewVM reads romPath, maps it into a fresh CPU's RAM alongside the font
// table, and returns a ready-to-run VM.
func NewVM(romPath string, rng Rand) (*VM, error) {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return nil, err
	}

	cpu := NewCPU(rng)
	if err := cpu.MapProgram(rom); err != nil {
		return nil, err
	}

	return &VM{CPU: cpu, Screen: NewScreen()}, nil
}

// Run starts the real-time loop at clockHz until the display requests quit
// or a fatal execution error occurs. audio may be nil.
func (vm *VM) Run(display Display, clockHz int, audio chan<- struct{}) error {
	return Run(vm.CPU, vm.Screen, display, clockHz, audio)
}

// DebuggedVM is the locked, debugger-aware counterpart to VM, used when
// cmd/run.go is given --debug. Each logical subdomain (cpu, screen) is
// guarded by its own mutex, per spec.md §5; the Debugger itself guards
// paused/step-token/breakpoints internally.
type DebuggedVM struct {
	CPU      *CPU
	cpuMu    sync.Mutex
	Screen   *Screen
	scrMu    sync.Mutex
	Debugger *Debugger
}

// NewDebuggedVM is NewVM plus an attached, Running Debugger.
func NewDebuggedVM(romPath string, rng Rand) (*DebuggedVM, error) {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return nil, err
	}

	cpu := NewCPU(rng)
	if err := cpu.MapProgram(rom); err != nil {
		return nil, err
	}

	return &DebuggedVM{
		CPU:      cpu,
		Screen:   NewScreen(),
		Debugger: NewDebugger(),
	}, nil
}

// Run starts the debugger-gated real-time loop. audio may be nil.
func (vm *DebuggedVM) Run(display Display, clockHz int, audio chan<- struct{}) error {
	return RunWithDebugger(vm.CPU, &vm.cpuMu, vm.Screen, &vm.scrMu, vm.Debugger, display, clockHz, audio)
}

// Registers returns a snapshot of the register file, safe to call from a
// control thread while the VM thread runs concurrently.
func (vm *DebuggedVM) Registers() RegisterFile {
	vm.cpuMu.Lock()
	defer vm.cpuMu.Unlock()
	return vm.CPU.Registers
}

// Memory returns a snapshot of RAM.
func (vm *DebuggedVM) Memory() []byte {
	vm.cpuMu.Lock()
	defer vm.cpuMu.Unlock()
	return vm.CPU.RAM.Bytes()
}

// NextInstruction decodes the instruction at the current PC without
// executing it.
func (vm *DebuggedVM) NextInstruction() (Instruction, error) {
	vm.cpuMu.Lock()
	defer vm.cpuMu.Unlock()
	return vm.CPU.PeekNextInstruction()
}

// LastDrawnSprite, LastDrawArea, and LastDrawResult surface the Screen's
// most recent DRW snapshots to the control plane.
func (vm *DebuggedVM) LastDrawnSprite() []byte {
	vm.scrMu.Lock()
	defer vm.scrMu.Unlock()
	return vm.Screen.LastDrawnSprite()
}

func (vm *DebuggedVM) LastDrawArea() (pre, post [][]bool) {
	vm.scrMu.Lock()
	defer vm.scrMu.Unlock()
	return vm.Screen.LastDrawArea()
}

func (vm *DebuggedVM) LastDrawResult() bool {
	vm.scrMu.Lock()
	defer vm.scrMu.Unlock()
	return vm.Screen.LastDrawResult()
}

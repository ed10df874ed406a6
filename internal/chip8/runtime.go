package chip8

import (
	"sync"
	"time"
)

// TimerHz is the fixed rate DT and ST tick at, independent of the CPU clock.
const TimerHz = 60.0

// DefaultClockHz is the CPU clock speed used when the caller doesn't
// override it (cmd/run.go's --clock-speed flag).
const DefaultClockHz = 500

// Display is everything the Runtime needs from a window backend: presenting
// a frame, pumping input events, and reporting whether quit was requested.
// The window backend itself (internal/display) lives outside the core, per
// spec.md §1.
type Display interface {
	Keyboard
	// Present draws one frame. Called only when the Screen is dirty.
	Present(frame [32][64]bool)
	// PollEvents drains pending window events and reports whether a quit
	// event was seen.
	PollEvents() (quit bool)
}

// Run drives the VM without a debugger: no locks, direct ownership of CPU
// and Screen, matching spec.md §5's "single-threaded mode" note. It returns
// when the display reports quit, or on the first fatal execution error.
// audio may be nil; when set, Run sends on it (non-blocking) on every tick
// where ST falls from 1 to 0, for internal/display.PlayBeeps to consume.
func Run(cpu *CPU, scr *Screen, display Display, clockHz int, audio chan<- struct{}) error {
	if clockHz <= 0 {
		clockHz = DefaultClockHz
	}
	cpuPeriod := time.Second / time.Duration(clockHz)

	lastTimerTick := time.Now()
	lastCycle := time.Now()

	for {
		now := time.Now()
		ticks := int(now.Sub(lastTimerTick).Seconds() * TimerHz)
		if ticks > 0 {
			lastTimerTick = now
			for i := 0; i < ticks; i++ {
				if cpu.TickTimers() {
					signalAudio(audio)
				}
			}
		}

		if now.Sub(lastCycle) < cpuPeriod {
			continue
		}

		if display.PollEvents() {
			return nil
		}

		if err := cpu.ExecuteCycle(display, scr); err != nil {
			return err
		}

		if scr.HasChanged() {
			display.Present(scr.Inspect())
			scr.ResetChanged()
		}

		lastCycle = time.Now()
	}
}

// RunWithDebugger drives the VM the same way Run does, but gates each
// cycle on a Debugger's pause/step/breakpoint state machine, acquiring
// cpuMu and screenMu in the fixed order documented in spec.md §5:
// paused/step-token/breakpoints (all inside Debugger) then cpu then screen,
// releasing everything before the next iteration's sleep.
func RunWithDebugger(cpu *CPU, cpuMu *sync.Mutex, scr *Screen, scrMu *sync.Mutex, dbg *Debugger, display Display, clockHz int, audio chan<- struct{}) error {
	if clockHz <= 0 {
		clockHz = DefaultClockHz
	}
	cpuPeriod := time.Second / time.Duration(clockHz)

	lastTimerTick := time.Now()
	lastCycle := time.Now()

	for {
		now := time.Now()
		ticks := int(now.Sub(lastTimerTick).Seconds() * TimerHz)
		if ticks > 0 {
			lastTimerTick = now
			cpuMu.Lock()
			triggered := false
			for i := 0; i < ticks; i++ {
				if cpu.TickTimers() {
					triggered = true
				}
			}
			cpuMu.Unlock()
			if triggered {
				signalAudio(audio)
			}
		}

		if now.Sub(lastCycle) < cpuPeriod {
			continue
		}

		if display.PollEvents() {
			return nil
		}

		switch dbg.decide() {
		case decisionSkip:
			lastCycle = time.Now()
			continue
		case decisionExecuteOne:
			if err := stepCycle(cpu, cpuMu, scr, scrMu, dbg, display); err != nil {
				return err
			}
		case decisionRunUntilDraw:
			cpuMu.Lock()
			next, err := cpu.PeekNextInstruction()
			cpuMu.Unlock()
			if err != nil {
				return err
			}
			if next.Kind == KindDRW {
				// Re-pause before executing the DRW itself.
				lastCycle = time.Now()
				continue
			}
			if err := stepCycle(cpu, cpuMu, scr, scrMu, dbg, display); err != nil {
				return err
			}
		case decisionRun:
			cpuMu.Lock()
			pc := cpu.Registers.PC
			cpuMu.Unlock()

			if dbg.checkBreakpoint(pc) {
				lastCycle = time.Now()
				continue
			}
			if err := stepCycle(cpu, cpuMu, scr, scrMu, dbg, display); err != nil {
				return err
			}
		}

		lastCycle = time.Now()
	}
}

// stepCycle executes exactly one CPU cycle under lock and presents the
// screen if it became dirty.
func stepCycle(cpu *CPU, cpuMu *sync.Mutex, scr *Screen, scrMu *sync.Mutex, dbg *Debugger, display Display) error {
	cpuMu.Lock()
	err := cpu.ExecuteCycle(display, scr)
	cpuMu.Unlock()
	if err != nil {
		return err
	}

	scrMu.Lock()
	if scr.HasChanged() {
		frame := scr.Inspect()
		scr.ResetChanged()
		scrMu.Unlock()
		display.Present(frame)
	} else {
		scrMu.Unlock()
	}
	return nil
}

// signalAudio sends a non-blocking beep signal, dropping it if the consumer
// hasn't drained the previous one yet rather than stalling the VM thread.
func signalAudio(audio chan<- struct{}) {
	if audio == nil {
		return
	}
	select {
	case audio <- struct{}{}:
	default:
	}
}

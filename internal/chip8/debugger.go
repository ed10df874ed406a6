package chip8

import "sync"

// pauseState is Paused/Running, guarded by its own mutex per the locking
// discipline in spec.md §5.
type pauseState int

const (
	stateRunning pauseState = iota
	statePaused
)

// stepToken controls what a Paused VM does on the next iteration:
// stay paused, execute exactly one cycle then re-pause, or run cycles
// until the next instruction to execute is DRW, then re-pause before it.
type stepToken int

const (
	stepStayPaused stepToken = iota
	stepOne
	stepToDraw
)

// Debugger is the control plane described in spec.md §4.9: a set of
// commands observable from an external transport (the transport itself is
// out of scope; this type is the command set the transport would expose).
// Every piece of shared state lives behind its own mutex, acquired briefly
// and never held across I/O, matching the locking discipline in §5.
type Debugger struct {
	pausedMu sync.Mutex
	paused   pauseState

	stepMu sync.Mutex
	step   stepToken

	breakpointsMu sync.Mutex
	breakpoints   map[uint16]struct{}

	// suppressBreakpointCheck is set for exactly one iteration following a
	// Resume, so resuming out of a breakpoint stop doesn't immediately
	// re-trigger the same breakpoint.
	suppressBreakpointCheck bool
}

// NewDebugger returns a Debugger starting in the Running state.
func NewDebugger() *Debugger {
	return &Debugger{
		paused:      stateRunning,
		step:        stepStayPaused,
		breakpoints: make(map[uint16]struct{}),
	}
}

// Pause transitions to Paused.
func (d *Debugger) Pause() {
	d.pausedMu.Lock()
	defer d.pausedMu.Unlock()
	d.paused = statePaused
}

// Resume transitions to Running and resets the step token to StayPaused.
// It also arms the one-cycle breakpoint-recheck suppression.
func (d *Debugger) Resume() {
	d.pausedMu.Lock()
	d.paused = stateRunning
	d.suppressBreakpointCheck = true
	d.pausedMu.Unlock()

	d.stepMu.Lock()
	d.step = stepStayPaused
	d.stepMu.Unlock()
}

// IsPaused reports the current Paused/Running state.
func (d *Debugger) IsPaused() bool {
	d.pausedMu.Lock()
	defer d.pausedMu.Unlock()
	return d.paused == statePaused
}

// StepNext arms a single-cycle step. It only has effect while Paused.
func (d *Debugger) StepNext() {
	d.pausedMu.Lock()
	paused := d.paused == statePaused
	d.pausedMu.Unlock()

	if !paused {
		return
	}
	d.stepMu.Lock()
	d.step = stepOne
	d.stepMu.Unlock()
}

// StepNextDraw arms a run-to-DRW step. It only has effect while Paused.
func (d *Debugger) StepNextDraw() {
	d.pausedMu.Lock()
	paused := d.paused == statePaused
	d.pausedMu.Unlock()

	if !paused {
		return
	}
	d.stepMu.Lock()
	d.step = stepToDraw
	d.stepMu.Unlock()
}

// AddBreakpoint adds pc to the breakpoint set.
func (d *Debugger) AddBreakpoint(pc uint16) {
	d.breakpointsMu.Lock()
	defer d.breakpointsMu.Unlock()
	d.breakpoints[pc] = struct{}{}
}

// DeleteBreakpoint removes pc from the breakpoint set.
func (d *Debugger) DeleteBreakpoint(pc uint16) {
	d.breakpointsMu.Lock()
	defer d.breakpointsMu.Unlock()
	delete(d.breakpoints, pc)
}

// Breakpoints returns a snapshot of the current breakpoint set.
func (d *Debugger) Breakpoints() []uint16 {
	d.breakpointsMu.Lock()
	defer d.breakpointsMu.Unlock()
	out := make([]uint16, 0, len(d.breakpoints))
	for pc := range d.breakpoints {
		out = append(out, pc)
	}
	return out
}

// hasBreakpoint reports whether pc is a breakpoint.
func (d *Debugger) hasBreakpoint(pc uint16) bool {
	d.breakpointsMu.Lock()
	defer d.breakpointsMu.Unlock()
	_, ok := d.breakpoints[pc]
	return ok
}

// decision captures what the Runtime loop should do for one iteration,
// computed while holding only the paused and step locks briefly.
type decision int

const (
	decisionSkip decision = iota
	decisionExecuteOne    // consume a StepOne token, execute exactly one cycle
	decisionRunUntilDraw  // StepToDraw armed: peek; execute unless next is DRW
	decisionRun           // Running: execute normally, subject to breakpoint check
)

// decide inspects and updates the paused/step state for one Runtime
// iteration, per the state machine in spec.md §4.9.
func (d *Debugger) decide() decision {
	d.pausedMu.Lock()
	paused := d.paused == statePaused
	d.pausedMu.Unlock()

	if !paused {
		return decisionRun
	}

	d.stepMu.Lock()
	defer d.stepMu.Unlock()

	switch d.step {
	case stepStayPaused:
		return decisionSkip
	case stepOne:
		d.step = stepStayPaused
		return decisionExecuteOne
	case stepToDraw:
		return decisionRunUntilDraw
	default:
		return decisionSkip
	}
}

// checkBreakpoint reports whether pc should trip a breakpoint stop this
// iteration, and transitions to Paused if so. It honors the one-cycle
// suppression armed by Resume.
func (d *Debugger) checkBreakpoint(pc uint16) bool {
	d.pausedMu.Lock()
	defer d.pausedMu.Unlock()

	if d.suppressBreakpointCheck {
		d.suppressBreakpointCheck = false
		return false
	}
	if d.paused != stateRunning {
		return false
	}

	d.breakpointsMu.Lock()
	_, hit := d.breakpoints[pc]
	d.breakpointsMu.Unlock()

	if hit {
		d.paused = statePaused
		return true
	}
	return false
}

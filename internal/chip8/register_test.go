package chip8

import "testing"

func TestRegisterFileReset(t *testing.T) {
	var rf RegisterFile
	rf.Set(0, 0xAB)
	rf.Set(VF, 0x01)
	rf.I = 0x300
	rf.PC = 0x400
	rf.SP = 4
	rf.DT = 10
	rf.ST = 20

	rf.Reset()

	if rf.PC != ramProgStart {
		t.Errorf("expected PC %#x after reset, got %#x", ramProgStart, rf.PC)
	}
	if rf.I != 0 {
		t.Errorf("expected I 0 after reset, got %#x", rf.I)
	}
	if rf.SP != 0 {
		t.Errorf("expected SP 0 after reset, got %d", rf.SP)
	}
	if rf.DT != 0 || rf.ST != 0 {
		t.Errorf("expected DT and ST 0 after reset, got DT=%d ST=%d", rf.DT, rf.ST)
	}
	for i := RegIndex(0); i <= VF; i++ {
		if got := rf.Get(i); got != 0 {
			t.Errorf("expected V%X 0 after reset, got %#x", i, got)
		}
	}
}

func TestRegisterFileGetSet(t *testing.T) {
	var rf RegisterFile
	rf.Set(3, 0x42)
	if got := rf.Get(3); got != 0x42 {
		t.Errorf("expected V3 = 0x42, got %#x", got)
	}

	// VF is always settable, whether from an explicit LD or a flag opcode.
	rf.Set(VF, 1)
	if got := rf.Get(VF); got != 1 {
		t.Errorf("expected VF = 1, got %#x", got)
	}
}

func TestRegisterFileSnapshot(t *testing.T) {
	var rf RegisterFile
	rf.Set(0, 1)
	rf.Set(15, 2)

	snap := rf.Snapshot()
	snap[0] = 99

	if got := rf.Get(0); got != 1 {
		t.Errorf("Snapshot should be a copy; mutating it changed the live register to %#x", got)
	}
}

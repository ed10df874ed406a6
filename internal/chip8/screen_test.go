package chip8

import "testing"

func TestScreenDrawNoCollision(t *testing.T) {
	s := NewScreen()
	sprite := []byte{0xF0} // top 4 bits set

	collision, err := s.Draw(0, 0, sprite)
	if err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	if collision {
		t.Errorf("expected no collision drawing onto a blank screen")
	}

	px := s.Inspect()
	for col := 0; col < 4; col++ {
		if !px[0][col] {
			t.Errorf("expected pixel (row 0, col %d) set", col)
		}
	}
	for col := 4; col < 8; col++ {
		if px[0][col] {
			t.Errorf("expected pixel (row 0, col %d) clear", col)
		}
	}
	if !s.HasChanged() {
		t.Errorf("expected Screen to be dirty after Draw")
	}
}

func TestScreenDrawCollision(t *testing.T) {
	s := NewScreen()
	sprite := []byte{0xFF}

	if _, err := s.Draw(0, 0, sprite); err != nil {
		t.Fatalf("first Draw returned error: %v", err)
	}
	collision, err := s.Draw(0, 0, sprite)
	if err != nil {
		t.Fatalf("second Draw returned error: %v", err)
	}
	if !collision {
		t.Errorf("expected collision when re-drawing the same sprite (XOR turns every pixel off)")
	}

	px := s.Inspect()
	for col := 0; col < 8; col++ {
		if px[0][col] {
			t.Errorf("expected pixel (row 0, col %d) clear after XOR self-collision", col)
		}
	}
}

func TestScreenDrawRowWraps(t *testing.T) {
	s := NewScreen()
	// 3-row sprite starting at y=30: rows land at 30, 31, 32 mod 32 == 0.
	sprite := []byte{0xFF, 0xFF, 0xFF}

	if _, err := s.Draw(0, screenHeight-2, sprite); err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}

	px := s.Inspect()
	if !px[0][0] {
		t.Errorf("expected sprite row 2 to wrap from y=32 onto row 0")
	}
	if !px[screenHeight-2][0] || !px[screenHeight-1][0] {
		t.Errorf("expected sprite rows 0 and 1 to land at rows %d and %d", screenHeight-2, screenHeight-1)
	}
}

func TestScreenDrawColumnWraps(t *testing.T) {
	s := NewScreen()
	// 0x01 lights sprite column 7; at x=60, 60+7=67 exceeds screenWidth and
	// wraps to column 3.
	sprite := []byte{0x01}

	if _, err := s.Draw(60, 0, sprite); err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}

	px := s.Inspect()
	if !px[0][3] {
		t.Errorf("expected sprite column 7 (x=60+7=67) to wrap to column 3")
	}
}

func TestScreenDrawOversizeSprite(t *testing.T) {
	s := NewScreen()
	sprite := make([]byte, maxSpriteSize+1)

	_, err := s.Draw(0, 0, sprite)
	if err == nil {
		t.Fatal("expected InvalidSpriteSizeError for an oversize sprite, got nil")
	}
	if _, ok := err.(*InvalidSpriteSizeError); !ok {
		t.Errorf("expected *InvalidSpriteSizeError, got %T", err)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen()
	s.Draw(0, 0, []byte{0xFF})
	s.ResetChanged()

	s.Clear()

	if !s.HasChanged() {
		t.Errorf("expected Screen to be dirty after Clear")
	}
	px := s.Inspect()
	if px[0][0] {
		t.Errorf("expected screen blank after Clear")
	}
}

func TestScreenLastDrawSnapshots(t *testing.T) {
	s := NewScreen()
	sprite := []byte{0xFF, 0x81}

	collision, _ := s.Draw(2, 3, sprite)

	if got := s.LastDrawnSprite(); len(got) != len(sprite) {
		t.Fatalf("expected LastDrawnSprite length %d, got %d", len(sprite), len(got))
	}
	if s.LastDrawResult() != collision {
		t.Errorf("LastDrawResult() = %v, want %v", s.LastDrawResult(), collision)
	}
	pre, post := s.LastDrawArea()
	if len(pre) != len(sprite) || len(post) != len(sprite) {
		t.Errorf("expected pre/post areas with %d rows each, got %d/%d", len(sprite), len(pre), len(post))
	}
}

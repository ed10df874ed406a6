// Package display is the window backend that presents the VM's frame
// buffer and pumps key events into it. It is an external collaborator to
// the chip8 core (spec.md §1 keeps the window backend out of scope for the
// core itself) built on the teacher's faiface/pixel stack.
package display

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/joshfalk/chippy8/internal/chip8"
)

const (
	gridWidth    float64 = 64
	gridHeight   float64 = 32
	windowWidth  float64 = 1024
	windowHeight float64 = 768
)

// Window embeds a pixelgl window and the hex-key -> pixelgl.Button mapping
// used to answer chip8.Keyboard queries.
type Window struct {
	*pixelgl.Window
	keyMap map[byte]pixelgl.Button
}

// NewWindow creates and opens a pixelgl window sized for a 64x32 CHIP-8
// display, scaled up for visibility, with the conventional
// 1234/QWER/ASDF/ZXCV keypad mapping.
func NewWindow() (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "chippy8",
		Bounds: pixel.R(0, 0, windowWidth, windowHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating new window: %v", err)
	}
	return &Window{
		Window: w,
		keyMap: map[byte]pixelgl.Button{
			0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
			0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
			0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
			0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
		},
	}, nil
}

// IsPressed implements chip8.Keyboard by asking pixelgl directly; the core
// never caches key state, so there is nothing to keep in sync here.
func (w *Window) IsPressed(key byte) bool {
	button, ok := w.keyMap[key]
	if !ok {
		return false
	}
	return w.Window.Pressed(button)
}

// PollEvents pumps the pixelgl event queue and reports whether the window
// was closed.
func (w *Window) PollEvents() bool {
	w.Window.Update()
	return w.Window.Closed()
}

// Present draws a 64x32 frame snapshot (row-major, [y][x]) scaled up to
// fill the window.
func (w *Window) Present(frame [32][64]bool) {
	w.Clear(colornames.Black)

	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)
	cellW, cellH := windowWidth/gridWidth, windowHeight/gridHeight

	for row := 0; row < 32; row++ {
		for col := 0; col < 64; col++ {
			if !frame[row][col] {
				continue
			}
			// Flip row so (0,0) renders top-left.
			y := float64(31 - row)
			x := float64(col)
			draw.Push(pixel.V(cellW*x, cellH*y))
			draw.Push(pixel.V(cellW*x+cellW, cellH*y+cellH))
			draw.Rectangle(0)
		}
	}

	draw.Draw(w)
	w.Window.Update()
}

var _ chip8.Display = (*Window)(nil)

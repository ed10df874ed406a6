package chip8

import "math/rand"

// Rand is the capability RND needs: a uniform random byte per call. It is
// injected rather than drawn from a process-global source so tests can
// pin the sequence (see spec's "RND determinism" design note).
type Rand interface {
	Byte() byte
}

// MathRand wraps a *math/rand.Rand as a Rand.
type MathRand struct {
	src *rand.Rand
}

// NewMathRand returns a MathRand seeded with seed.
func NewMathRand(seed int64) *MathRand {
	return &MathRand{src: rand.New(rand.NewSource(seed))}
}

// Byte returns a uniformly distributed byte in [0, 255].
func (m *MathRand) Byte() byte {
	return byte(m.src.Intn(256))
}

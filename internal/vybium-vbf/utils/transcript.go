package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Transcript is a deterministic sampler driven by a SHA3-256 hash chain.
// Every draw is recorded, so the same seed replays the same values.
type Transcript struct {
	state []byte
	log   []string
}

// NewTranscript creates a transcript seeded with seed
func NewTranscript(seed []byte) *Transcript {
	t := &Transcript{
		state: []byte{0},
		log:   make([]string, 0, 64),
	}
	t.Absorb(seed)
	return t
}

// Absorb mixes data into the transcript state
func (t *Transcript) Absorb(data []byte) {
	t.log = append(t.log, fmt.Sprintf("absorb:%s", hex.EncodeToString(data)))
	h := sha3.Sum256(append(t.state, data...))
	t.state = h[:]
}

// next returns 64 fresh bits and advances the state
func (t *Transcript) next() uint64 {
	v := binary.LittleEndian.Uint64(t.state)
	h := sha3.Sum256(t.state)
	t.state = h[:]
	return v
}

// ReceiveUint32 returns a value in [0, bound). bound must be positive.
func (t *Transcript) ReceiveUint32(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	// Rejection sampling keeps the draw unbiased.
	limit := (uint64(1) << 32) / uint64(bound) * uint64(bound)
	for {
		v := t.next() & 0xFFFFFFFF
		if v < limit {
			r := uint32(v % uint64(bound))
			t.log = append(t.log, fmt.Sprintf("receive:%d", r))
			return r
		}
	}
}

// ReceiveNonzero returns a value in [1, bound).
func (t *Transcript) ReceiveNonzero(bound uint32) uint32 {
	if bound <= 1 {
		return 0
	}
	return 1 + t.ReceiveUint32(bound-1)
}

// ReceiveInvertibleMatrix returns n linearly independent column vectors of n
// bits each; column i is the image of the i-th unit vector.
func (t *Transcript) ReceiveInvertibleMatrix(n uint) []uint32 {
	size := uint32(1) << n
	cols := make([]uint32, 0, n)
	// basis[b] holds a reduced vector whose leading bit is b, or 0.
	basis := make([]uint32, n)
	for uint(len(cols)) < n {
		v := t.ReceiveNonzero(size)
		r := v
		for b := int(n) - 1; b >= 0 && r != 0; b-- {
			if r&(1<<uint(b)) == 0 {
				continue
			}
			if basis[b] == 0 {
				basis[b] = r
				cols = append(cols, v)
				break
			}
			r ^= basis[b]
		}
	}
	return cols
}

// State returns the current transcript state
func (t *Transcript) State() []byte {
	return append([]byte(nil), t.state...)
}

// Log returns the recorded draws
func (t *Transcript) Log() []string {
	return append([]string(nil), t.log...)
}

// String returns a string representation of the transcript
func (t *Transcript) String() string {
	return strings.Join(t.log, " ")
}

package asciimask

import (
	"errors"
	"math"
)

// CharacterMapper converts cell brightness values into ramp characters.
// The ramp is ordered dense to sparse, so brightness 0 yields the first
// rune and brightness 1 the last.
type CharacterMapper struct {
	ramp []rune
}

// NewCharacterMapper builds a mapper over the given ramp. The ramp is
// interpreted as runes, not bytes, so multi-byte characters map as
// single entries.
func NewCharacterMapper(ramp string) (*CharacterMapper, error) {
	runes := []rune(ramp)
	if len(runes) == 0 {
		return nil, errors.New("charmap: ramp must contain at least one character")
	}
	return &CharacterMapper{ramp: runes}, nil
}

// Len returns the number of ramp entries.
func (m *CharacterMapper) Len() int {
	return len(m.ramp)
}

// Map returns the ramp index and rune for a brightness in [0, 1].
// Out-of-range values clamp to the nearest end, and the index rounds
// half up, so a brightness exactly between two runes picks the sparser.
func (m *CharacterMapper) Map(brightness float64) (int, rune) {
	if brightness < 0 {
		brightness = 0
	} else if brightness > 1 {
		brightness = 1
	}
	idx := int(math.Round(brightness * float64(len(m.ramp)-1)))
	if idx < 0 {
		idx = 0
	} else if idx >= len(m.ramp) {
		idx = len(m.ramp) - 1
	}
	return idx, m.ramp[idx]
}

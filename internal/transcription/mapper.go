package transcription

import (
	"fmt"
	"math"
)

// Mapper converts between frequencies and pitch names under 12-tone equal temperament.
type Mapper struct {
	alphabet *Alphabet
}

// NewMapper returns a mapper bound to the given alphabet.
func NewMapper(alphabet *Alphabet) *Mapper {
	return &Mapper{alphabet: alphabet}
}

// Name returns the pitch name nearest to freq. The Unvoiced sentinel maps to
// RestSymbol. A frequency exactly half a semitone between two pitches maps to
// the higher one.
func (m *Mapper) Name(freq float64) (string, error) {
	if freq == Unvoiced {
		return RestSymbol, nil
	}
	if freq < 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return "", fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, freq)
	}

	semitones := 12 * math.Log2(freq/m.alphabet.referenceHz)
	name, ok := m.alphabet.nameAt(m.alphabet.referenceIndex + nearestSemitone(semitones))
	if !ok {
		return "", fmt.Errorf("%w: %v Hz is outside octaves %d-%d", ErrInvalidFrequency, freq, minOctave, maxOctave)
	}
	return name, nil
}

// Frequency returns the nominal frequency of a pitch name, or Unvoiced for a rest.
func (m *Mapper) Frequency(name string) (float64, error) {
	if m.alphabet.IsRest(name) {
		return Unvoiced, nil
	}
	idx, err := m.alphabet.index(name)
	if err != nil {
		return 0, err
	}
	return m.alphabet.referenceHz * math.Pow(2, float64(idx-m.alphabet.referenceIndex)/12), nil
}

// semitoneEpsilon absorbs the log2 error on frequencies that sit exactly
// half a semitone from a pitch.
const semitoneEpsilon = 1e-9

// nearestSemitone rounds half up: +0.5 goes to +1 and -0.5 goes to 0.
func nearestSemitone(semitones float64) int {
	return int(math.Floor(semitones + 0.5 + semitoneEpsilon))
}

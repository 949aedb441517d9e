package transcription

import (
	"fmt"
	"regexp"
	"strings"
)

// Unvoiced is the frequency reported for windows without a detectable pitch.
const Unvoiced = 0.0

// RestSymbol is the pitch name carried by unvoiced points.
const RestSymbol = "R"

// pitchClasses is the chromatic alphabet in ascending order starting at C.
var pitchClasses = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const (
	minOctave = 0
	maxOctave = 9
)

// Alphabet is the pitch-name table and token grammar shared by the mapper,
// renderer and codec. It is immutable once built.
type Alphabet struct {
	referenceName  string
	referenceHz    float64
	referenceIndex int
	token          *regexp.Regexp
}

// StandardAlphabet anchors A4 at 440 Hz.
var StandardAlphabet = mustAlphabet("A4", 440)

// NewAlphabet builds an alphabet anchored at the given reference pitch,
// e.g. ("A4", 442) for a sharper orchestra tuning.
func NewAlphabet(referenceName string, referenceHz float64) (*Alphabet, error) {
	if referenceHz <= 0 {
		return nil, fmt.Errorf("%w: reference frequency %v", ErrInvalidParameter, referenceHz)
	}

	alternatives := make([]string, 0, len(pitchClasses))
	// Sharps first so the longer spelling is tried before its natural prefix.
	for _, class := range pitchClasses {
		if strings.HasSuffix(class, "#") {
			alternatives = append(alternatives, regexp.QuoteMeta(class))
		}
	}
	for _, class := range pitchClasses {
		if !strings.HasSuffix(class, "#") {
			alternatives = append(alternatives, class)
		}
	}

	pattern := fmt.Sprintf(`^((?:%s)[%d-%d]|%s)(\d+(?:\.\d+)?)$`,
		strings.Join(alternatives, "|"), minOctave, maxOctave, regexp.QuoteMeta(RestSymbol))

	a := &Alphabet{
		referenceName: referenceName,
		referenceHz:   referenceHz,
		token:         regexp.MustCompile(pattern),
	}

	idx, err := a.index(referenceName)
	if err != nil {
		return nil, fmt.Errorf("%w: reference pitch %q", ErrInvalidParameter, referenceName)
	}
	a.referenceIndex = idx

	return a, nil
}

func mustAlphabet(name string, hz float64) *Alphabet {
	a, err := NewAlphabet(name, hz)
	if err != nil {
		panic(err)
	}
	return a
}

// PitchClasses returns the chromatic pitch-class names.
func (a *Alphabet) PitchClasses() []string {
	out := make([]string, len(pitchClasses))
	copy(out, pitchClasses)
	return out
}

// Reference returns the anchor pitch name and its frequency.
func (a *Alphabet) Reference() (string, float64) {
	return a.referenceName, a.referenceHz
}

// TokenPattern returns the regular expression a single serialized token must match.
// Group 1 is the pitch name, group 2 the duration in seconds.
func (a *Alphabet) TokenPattern() string {
	return a.token.String()
}

// ParseToken splits a serialized token into pitch name and duration text.
func (a *Alphabet) ParseToken(token string) (name, duration string, ok bool) {
	m := a.token.FindStringSubmatch(token)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsRest reports whether name is the rest symbol.
func (a *Alphabet) IsRest(name string) bool {
	return name == RestSymbol
}

// Split returns the pitch class and octave of a pitch name such as "C#5".
func (a *Alphabet) Split(name string) (class string, octave int, err error) {
	if len(name) < 2 {
		return "", 0, fmt.Errorf("%w: pitch name %q", ErrMalformedSequence, name)
	}
	class, digit := name[:len(name)-1], name[len(name)-1]
	if digit < '0'+minOctave || digit > '0'+maxOctave {
		return "", 0, fmt.Errorf("%w: pitch name %q", ErrMalformedSequence, name)
	}
	for _, c := range pitchClasses {
		if c == class {
			return class, int(digit - '0'), nil
		}
	}
	return "", 0, fmt.Errorf("%w: pitch name %q", ErrMalformedSequence, name)
}

// index returns the absolute semitone index of a pitch name, counting C0 as 0.
func (a *Alphabet) index(name string) (int, error) {
	class, octave, err := a.Split(name)
	if err != nil {
		return 0, err
	}
	for i, c := range pitchClasses {
		if c == class {
			return octave*len(pitchClasses) + i, nil
		}
	}
	return 0, fmt.Errorf("%w: pitch name %q", ErrMalformedSequence, name)
}

// nameAt is the inverse of index.
func (a *Alphabet) nameAt(index int) (string, bool) {
	n := len(pitchClasses)
	octave := floorDiv(index, n)
	if octave < minOctave || octave > maxOctave {
		return "", false
	}
	return fmt.Sprintf("%s%d", pitchClasses[index-octave*n], octave), true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

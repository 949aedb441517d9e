package transcription

import (
	"fmt"
	"strconv"
	"strings"
)

// Delimiter separates serialized points.
const Delimiter = ","

// Codec converts sequences to and from their persisted text form,
// e.g. "A40.5,C41.0": pitch name immediately followed by the duration in seconds.
type Codec struct {
	alphabet *Alphabet
	mapper   *Mapper
}

// NewCodec binds the codec to the shared alphabet.
func NewCodec(alphabet *Alphabet) *Codec {
	return &Codec{alphabet: alphabet, mapper: NewMapper(alphabet)}
}

// Encode serializes the sequence. A nil or empty sequence encodes to "".
func (c *Codec) Encode(s *Sequence) string {
	if s == nil {
		return ""
	}
	tokens := make([]string, len(s.Points))
	for i, p := range s.Points {
		tokens[i] = p.PitchName + formatDuration(p.Duration)
	}
	return strings.Join(tokens, Delimiter)
}

// Decode parses serialized text. Timestamps are rebuilt by laying points end
// to end from zero, and frequencies are the nominal pitch frequencies. Any bad
// token fails the whole call.
func (c *Codec) Decode(text string) (*Sequence, error) {
	if text == "" {
		return &Sequence{Points: []AnalysisPoint{}, State: Combined}, nil
	}

	tokens := strings.Split(text, Delimiter)
	points := make([]AnalysisPoint, 0, len(tokens))
	var cursor float64

	for i, tok := range tokens {
		name, durText, ok := c.alphabet.ParseToken(tok)
		if !ok {
			return nil, fmt.Errorf("%w: token %d %q", ErrMalformedSequence, i, tok)
		}
		duration, err := strconv.ParseFloat(durText, 64)
		if err != nil || duration <= 0 {
			return nil, fmt.Errorf("%w: token %d %q has no positive duration", ErrMalformedSequence, i, tok)
		}
		freq, err := c.mapper.Frequency(name)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q", ErrMalformedSequence, i, tok)
		}

		points = append(points, AnalysisPoint{
			Timestamp: cursor,
			Frequency: freq,
			PitchName: name,
			Duration:  duration,
		})
		cursor += duration
	}

	return &Sequence{Points: points, State: Combined}, nil
}

// Validate checks text against the grammar without building a sequence.
func (c *Codec) Validate(text string) error {
	_, err := c.Decode(text)
	return err
}

// formatDuration writes the shortest exact decimal and always keeps a
// fractional part, so 1 becomes "1.0".
func formatDuration(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

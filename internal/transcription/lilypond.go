package transcription

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	lilypondPreamble  = "\\relative c' {\n    \\key c \\major\n    \\time 4/4\n"
	lilypondPostamble = "\n}"
)

// RendererOptions configures LilyPond output.
type RendererOptions struct {
	ReferenceOctave int    // octave written without transposition marks (default 4)
	RestToken       string // token for silence; empty means rests cannot be rendered
}

// DefaultRendererOptions renders rests with LilyPond's "r".
func DefaultRendererOptions() RendererOptions {
	return RendererOptions{ReferenceOctave: 4, RestToken: "r"}
}

// LilyPondRenderer turns a quantized sequence into LilyPond source.
type LilyPondRenderer struct {
	alphabet  *Alphabet
	quantizer *Quantizer
	opts      RendererOptions
}

// NewLilyPondRenderer binds the renderer to the shared alphabet and length table.
func NewLilyPondRenderer(alphabet *Alphabet, quantizer *Quantizer, opts RendererOptions) *LilyPondRenderer {
	return &LilyPondRenderer{alphabet: alphabet, quantizer: quantizer, opts: opts}
}

// Render emits one token per point inside a C major, 4/4 block.
func (r *LilyPondRenderer) Render(s *Sequence, beat float64) (string, error) {
	if beat <= 0 {
		return "", fmt.Errorf("%w: beat length %v", ErrInvalidParameter, beat)
	}
	if s == nil {
		return "", fmt.Errorf("%w: nil sequence", ErrInvalidParameter)
	}

	var b strings.Builder
	b.WriteString(lilypondPreamble)
	for i, p := range s.Points {
		token, err := r.token(p, beat)
		if err != nil {
			return "", fmt.Errorf("point %d: %w", i, err)
		}
		b.WriteString(token)
		b.WriteByte(' ')
	}
	b.WriteString(lilypondPostamble)

	return b.String(), nil
}

func (r *LilyPondRenderer) token(p AnalysisPoint, beat float64) (string, error) {
	length := r.quantizer.Nearest(p.Duration / beat).Token

	if r.alphabet.IsRest(p.PitchName) {
		if r.opts.RestToken == "" {
			return "", ErrUnsupportedRest
		}
		return r.opts.RestToken + length, nil
	}

	class, octave, err := r.alphabet.Split(p.PitchName)
	if err != nil {
		return "", err
	}

	return lilypondPitch(class) + r.octaveMark(octave) + length, nil
}

// octaveMark scales with the offset above the reference octave, but every
// octave at or below the reference gets the same single mark.
// TODO: confirm with product whether octaves below the reference should use
// commas scaled by the offset; stored notation currently matches this output.
func (r *LilyPondRenderer) octaveMark(octave int) string {
	offset := octave - r.opts.ReferenceOctave
	if offset > 0 {
		return "'" + strconv.Itoa(offset)
	}
	return "'"
}

// lilypondPitch spells a pitch class in LilyPond's default (Dutch) names: "C#" -> "cis".
func lilypondPitch(class string) string {
	name := strings.ToLower(class[:1])
	if strings.HasSuffix(class, "#") {
		name += "is"
	}
	return name
}

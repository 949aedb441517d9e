package transcription

import (
	"fmt"
	"math"
)

// Length is a canonical note length: a multiple of the beat and its notation token.
type Length struct {
	Beats float64
	Token string
}

// CanonicalLengths is ordered coarse to fine. Order matters: on an exact tie
// the earlier (longer) entry wins.
var CanonicalLengths = []Length{
	{Beats: 4, Token: "1"},
	{Beats: 2, Token: "2"},
	{Beats: 1, Token: "4"},
	{Beats: 0.5, Token: "8"},
	{Beats: 0.25, Token: "16"},
}

// Quantizer snaps durations to the nearest canonical length.
type Quantizer struct {
	lengths []Length
}

// NewQuantizer uses CanonicalLengths when lengths is empty.
func NewQuantizer(lengths []Length) *Quantizer {
	if len(lengths) == 0 {
		lengths = CanonicalLengths
	}
	return &Quantizer{lengths: lengths}
}

// Nearest returns the table entry closest to ratio (duration / beat length).
// Values past either end snap to that end.
func (q *Quantizer) Nearest(ratio float64) Length {
	best := q.lengths[0]
	bestDiff := math.Abs(best.Beats - ratio)
	for _, l := range q.lengths[1:] {
		if d := math.Abs(l.Beats - ratio); d < bestDiff {
			best, bestDiff = l, d
		}
	}
	return best
}

// Quantize rewrites each point's duration to its canonical length in seconds and
// lays the points end to end from the first point's start.
func (q *Quantizer) Quantize(s *Sequence, beat float64) error {
	if beat <= 0 {
		return fmt.Errorf("%w: beat length %v", ErrInvalidParameter, beat)
	}
	if len(s.Points) == 0 {
		s.State = Quantized
		return nil
	}

	points := make([]AnalysisPoint, len(s.Points))
	cursor := s.Points[0].Timestamp
	for i, p := range s.Points {
		p.Duration = q.Nearest(p.Duration/beat).Beats * beat
		p.Timestamp = cursor
		cursor += p.Duration
		points[i] = p
	}

	s.Points = points
	s.State = Quantized
	return nil
}

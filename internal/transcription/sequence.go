package transcription

import "math"

// State tracks where a Sequence is in the analysis lifecycle.
type State int

const (
	// Raw holds one point per analysis window.
	Raw State = iota
	// Combined holds one point per run of identical pitch names.
	Combined
	// Quantized is a combined sequence whose durations sit on canonical lengths.
	Quantized
)

func (s State) String() string {
	switch s {
	case Raw:
		return "raw"
	case Combined:
		return "combined"
	case Quantized:
		return "quantized"
	default:
		return "unknown"
	}
}

// AnalysisPoint is one event of a sequence.
type AnalysisPoint struct {
	Timestamp float64 `json:"timestamp" doc:"Start of the event in seconds"`
	Frequency float64 `json:"frequency" doc:"Dominant frequency in Hz, 0 when unvoiced"`
	PitchName string  `json:"pitch_name" doc:"Pitch class plus octave digit, or R for a rest"`
	Duration  float64 `json:"duration" doc:"Length of the event in seconds"`
}

// End returns the time the point stops sounding.
func (p AnalysisPoint) End() float64 {
	return p.Timestamp + p.Duration
}

// Sequence is an ordered list of analysis points. It is owned by a single
// caller and is not safe for concurrent mutation.
type Sequence struct {
	Points []AnalysisPoint `json:"points"`
	State  State           `json:"-"`
}

// Len returns the number of points.
func (s *Sequence) Len() int {
	return len(s.Points)
}

// Duration returns the time covered from the first point's start to the last point's end.
func (s *Sequence) Duration() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].End() - s.Points[0].Timestamp
}

// Equivalent reports whether two sequences carry the same pitches, timestamps and
// durations. Frequencies are ignored because the serialized form does not keep them.
func (s *Sequence) Equivalent(other *Sequence, tolerance float64) bool {
	if len(s.Points) != len(other.Points) {
		return false
	}
	for i, p := range s.Points {
		q := other.Points[i]
		if p.PitchName != q.PitchName ||
			math.Abs(p.Timestamp-q.Timestamp) > tolerance ||
			math.Abs(p.Duration-q.Duration) > tolerance {
			return false
		}
	}
	return true
}

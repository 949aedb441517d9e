package transcription

import "fmt"

// Build turns per-window frequencies into a Raw sequence: one point per window,
// each lasting exactly one window.
func Build(freqs []float64, window float64, mapper *Mapper) (*Sequence, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window length %v", ErrInvalidParameter, window)
	}

	points := make([]AnalysisPoint, 0, len(freqs))
	for i, f := range freqs {
		name, err := mapper.Name(f)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", i, err)
		}
		points = append(points, AnalysisPoint{
			Timestamp: float64(i) * window,
			Frequency: f,
			PitchName: name,
			Duration:  window,
		})
	}

	return &Sequence{Points: points, State: Raw}, nil
}

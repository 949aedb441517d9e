package transcription

import "math"

const testRate = 44100

func sine(freq, amplitude, seconds float64) []float64 {
	n := int(math.Round(seconds * testRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/testRate)
	}
	return out
}

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func names(s *Sequence) []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.PitchName
	}
	return out
}

package transcription

// CombineRuns folds consecutive points sharing a pitch name into one point.
// Each run keeps the start time and frequency of its first window and lasts
// window × run length. The input is not modified.
func CombineRuns(points []AnalysisPoint, window float64) []AnalysisPoint {
	combined := make([]AnalysisPoint, 0, len(points))
	if len(points) == 0 {
		return combined
	}

	run := points[0]
	count := 1
	closeRun := func() {
		run.Duration = float64(count) * window
		combined = append(combined, run)
	}

	for _, p := range points[1:] {
		if p.PitchName == run.PitchName {
			count++
			continue
		}
		closeRun()
		run = p
		count = 1
	}
	closeRun()

	return combined
}

// Combine replaces a Raw sequence's points with their runs.
func (s *Sequence) Combine(window float64) {
	s.Points = CombineRuns(s.Points, window)
	s.State = Combined
}

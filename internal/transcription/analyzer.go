// Package transcription turns a mono waveform into an editable note sequence
// and renders that sequence as LilyPond notation.
//
// The pipeline is linear: samples are split into fixed windows, each window
// gets a dominant frequency, frequencies become pitch names, identical
// neighbours are merged into runs, and run lengths are snapped to canonical
// note lengths relative to a beat. Every stage is a pure function of its input,
// so independent recordings can be analyzed in parallel without coordination.
package transcription

import "fmt"

// Options wires the pipeline stages together.
type Options struct {
	Alphabet  *Alphabet
	Estimator EstimatorOptions
	Renderer  RendererOptions
	Lengths   []Length
}

// DefaultOptions uses the A4 = 440 Hz alphabet and the standard length table.
func DefaultOptions() Options {
	return Options{
		Alphabet:  StandardAlphabet,
		Estimator: DefaultEstimatorOptions(),
		Renderer:  DefaultRendererOptions(),
		Lengths:   CanonicalLengths,
	}
}

// Analyzer runs the full pipeline. It holds no per-recording state and may be
// shared between goroutines.
type Analyzer struct {
	alphabet  *Alphabet
	estimator *Estimator
	mapper    *Mapper
	quantizer *Quantizer
	renderer  *LilyPondRenderer
	codec     *Codec
}

// NewAnalyzer builds every stage from a single alphabet.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Alphabet == nil {
		opts.Alphabet = StandardAlphabet
	}
	quantizer := NewQuantizer(opts.Lengths)
	return &Analyzer{
		alphabet:  opts.Alphabet,
		estimator: NewEstimator(opts.Estimator),
		mapper:    NewMapper(opts.Alphabet),
		quantizer: quantizer,
		renderer:  NewLilyPondRenderer(opts.Alphabet, quantizer, opts.Renderer),
		codec:     NewCodec(opts.Alphabet),
	}
}

// Analyze returns a combined, quantized sequence for the recording. Nothing is
// returned on failure.
func (a *Analyzer) Analyze(samples []float64, sampleRate int, window, beat float64) (*Sequence, error) {
	if beat <= 0 {
		return nil, fmt.Errorf("%w: beat length %v", ErrInvalidParameter, beat)
	}

	freqs, err := a.estimator.Estimate(samples, sampleRate, window)
	if err != nil {
		return nil, err
	}

	seq, err := Build(freqs, window, a.mapper)
	if err != nil {
		return nil, err
	}

	seq.Combine(window)

	if err := a.quantizer.Quantize(seq, beat); err != nil {
		return nil, err
	}

	return seq, nil
}

// RenderNotation renders a quantized sequence as LilyPond source.
func (a *Analyzer) RenderNotation(s *Sequence, beat float64) (string, error) {
	return a.renderer.Render(s, beat)
}

// Codec returns the codec sharing this analyzer's alphabet.
func (a *Analyzer) Codec() *Codec {
	return a.codec
}

// Alphabet returns the shared pitch alphabet.
func (a *Analyzer) Alphabet() *Alphabet {
	return a.alphabet
}

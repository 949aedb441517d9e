package transcription

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// EstimatorOptions tunes the dominant-frequency estimator.
type EstimatorOptions struct {
	NoiseFloorDb float64 // windows with RMS below this are unvoiced (default -40)
	MinFrequency float64 // lowest frequency searched, Hz (default 50)
	MaxFrequency float64 // highest frequency searched, Hz (default 2000)
	PeakRatio    float64 // peak magnitude over mean band magnitude needed to call a window voiced (default 8)
	MinFFTSize   int     // smallest transform length; windows are zero padded up to it (default 8192)
}

// DefaultEstimatorOptions returns the options used by the service.
func DefaultEstimatorOptions() EstimatorOptions {
	return EstimatorOptions{
		NoiseFloorDb: -40,
		MinFrequency: 50,
		MaxFrequency: 2000,
		PeakRatio:    8,
		MinFFTSize:   8192,
	}
}

// Estimator produces one dominant-frequency estimate per non-overlapping window.
// A trailing partial window is estimated as-is.
type Estimator struct {
	opts EstimatorOptions
}

// NewEstimator fills zero-valued options with defaults.
func NewEstimator(opts EstimatorOptions) *Estimator {
	def := DefaultEstimatorOptions()
	if opts.NoiseFloorDb == 0 {
		opts.NoiseFloorDb = def.NoiseFloorDb
	}
	if opts.MinFrequency == 0 {
		opts.MinFrequency = def.MinFrequency
	}
	if opts.MaxFrequency == 0 {
		opts.MaxFrequency = def.MaxFrequency
	}
	if opts.PeakRatio == 0 {
		opts.PeakRatio = def.PeakRatio
	}
	if opts.MinFFTSize == 0 {
		opts.MinFFTSize = def.MinFFTSize
	}
	return &Estimator{opts: opts}
}

// Estimate returns a frequency per window, Unvoiced where no pitch stands out.
func (e *Estimator) Estimate(samples []float64, sampleRate int, window float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrDecode)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrDecode, sampleRate)
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: window length %v", ErrInvalidParameter, window)
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: sample %d is %v", ErrDecode, i, s)
		}
	}

	windowSize := max(int(math.Round(window*float64(sampleRate))), 1)
	fftSize := nextPowerOfTwo(max(windowSize, e.opts.MinFFTSize))
	fft := fourier.NewFFT(fftSize)
	fftIn := make([]float64, fftSize)
	hann := makeHannWindow(windowSize)
	threshold := math.Pow(10, e.opts.NoiseFloorDb/20)
	binHz := float64(sampleRate) / float64(fftSize)

	numWindows := (len(samples) + windowSize - 1) / windowSize
	freqs := make([]float64, 0, numWindows)

	for start := 0; start < len(samples); start += windowSize {
		end := min(start+windowSize, len(samples))
		freqs = append(freqs, e.estimateWindow(samples[start:end], hann, fft, fftIn, threshold, binHz))
	}

	return freqs, nil
}

func (e *Estimator) estimateWindow(chunk, hann []float64, fft *fourier.FFT, fftIn []float64, threshold, binHz float64) float64 {
	var mean float64
	for _, s := range chunk {
		mean += s
	}
	mean /= float64(len(chunk))

	var sumSq float64
	for _, s := range chunk {
		d := s - mean
		sumSq += d * d
	}
	if math.Sqrt(sumSq/float64(len(chunk))) < threshold {
		return Unvoiced
	}

	clear(fftIn)
	for i, s := range chunk {
		fftIn[i] = (s - mean) * hann[i]
	}

	coeffs := fft.Coefficients(nil, fftIn)

	lo := max(int(math.Ceil(e.opts.MinFrequency/binHz)), 1)
	hi := min(int(math.Floor(e.opts.MaxFrequency/binHz)), len(coeffs)-2)
	if hi <= lo {
		return Unvoiced
	}

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = math.Hypot(real(c), imag(c))
	}

	peak := lo
	var bandSum float64
	for i := lo; i <= hi; i++ {
		bandSum += mags[i]
		if mags[i] > mags[peak] {
			peak = i
		}
	}
	bandMean := bandSum / float64(hi-lo+1)
	if bandMean == 0 || mags[peak]/bandMean < e.opts.PeakRatio {
		return Unvoiced
	}

	return (float64(peak) + parabolicOffset(mags[peak-1], mags[peak], mags[peak+1])) * binHz
}

// parabolicOffset refines a spectral peak to sub-bin precision. The result lies in [-0.5, 0.5].
func parabolicOffset(left, centre, right float64) float64 {
	denom := left - 2*centre + right
	if denom == 0 {
		return 0
	}
	return math.Max(-0.5, math.Min(0.5, 0.5*(left-right)/denom))
}

func makeHannWindow(size int) []float64 {
	window := make([]float64, size)
	if size == 1 {
		window[0] = 1
		return window
	}
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}
	return window
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

package transcription

import "errors"

var (
	// ErrDecode is returned when the sample buffer or sample rate cannot be analyzed.
	ErrDecode = errors.New("unusable audio buffer")
	// ErrInvalidFrequency is returned for non-positive frequencies that are not the unvoiced sentinel.
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrMalformedSequence is returned when serialized text violates the pitch+duration grammar.
	ErrMalformedSequence = errors.New("malformed note sequence")
	// ErrUnsupportedRest is returned when a rest must be rendered and no rest token is configured.
	ErrUnsupportedRest = errors.New("notation format has no rest token")
	// ErrInvalidParameter is returned for non-positive window or beat lengths.
	ErrInvalidParameter = errors.New("invalid analysis parameter")
)

package transcription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetParseToken(t *testing.T) {
	tests := []struct {
		token    string
		name     string
		duration string
		ok       bool
	}{
		{token: "A40.5", name: "A4", duration: "0.5", ok: true},
		{token: "C41.0", name: "C4", duration: "1.0", ok: true},
		{token: "C#52", name: "C#5", duration: "2", ok: true},
		{token: "R0.25", name: "R", duration: "0.25", ok: true},
		{token: "G#010", name: "G#0", duration: "10", ok: true},
		{token: "H40.5", ok: false},
		{token: "a40.5", ok: false},
		{token: "A4", ok: false},
		{token: "A4.5", ok: false},
		{token: "A40.", ok: false},
		{token: "Db40.5", ok: false},
		{token: "", ok: false},
		{token: " A40.5", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			name, duration, ok := StandardAlphabet.ParseToken(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.name, name)
				assert.Equal(t, tt.duration, duration)
			}
		})
	}
}

func TestAlphabetSplit(t *testing.T) {
	class, octave, err := StandardAlphabet.Split("F#3")
	require.NoError(t, err)
	assert.Equal(t, "F#", class)
	assert.Equal(t, 3, octave)

	for _, bad := range []string{"", "A", "H4", "A#", "Ab4"} {
		_, _, err := StandardAlphabet.Split(bad)
		assert.ErrorIs(t, err, ErrMalformedSequence, bad)
	}
}

func TestNewAlphabet(t *testing.T) {
	a, err := NewAlphabet("A4", 442)
	require.NoError(t, err)
	name, hz := a.Reference()
	assert.Equal(t, "A4", name)
	assert.Equal(t, 442.0, hz)
	assert.Len(t, a.PitchClasses(), 12)

	_, err = NewAlphabet("A4", 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewAlphabet("Q4", 440)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestAlphabetIndexRoundTrip(t *testing.T) {
	for idx := 0; idx < 120; idx++ {
		name, ok := StandardAlphabet.nameAt(idx)
		require.True(t, ok)
		back, err := StandardAlphabet.index(name)
		require.NoError(t, err)
		assert.Equal(t, idx, back)
	}

	_, ok := StandardAlphabet.nameAt(-1)
	assert.False(t, ok)
	_, ok = StandardAlphabet.nameAt(120)
	assert.False(t, ok)
}

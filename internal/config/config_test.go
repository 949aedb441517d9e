package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/echo/internal/storage"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, storage.BackendS3, cfg.Storage.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Processing.FFmpegTimeout)
	assert.Equal(t, 0.25, cfg.Analysis.WindowSeconds)
	assert.Equal(t, 0.25, cfg.Analysis.BeatSeconds)
	assert.Equal(t, 440.0, cfg.Analysis.ReferencePitchHz)
	assert.Equal(t, "r", cfg.Analysis.RestToken)
	assert.Equal(t, 4, cfg.Analysis.ReferenceOctave)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "MINIO")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("BEAT_LENGTH_SECONDS", "0.5")
	t.Setenv("S3_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, storage.BackendMinio, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, 0.5, cfg.Analysis.BeatSeconds)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "STORAGE_BACKEND", "gcs"},
		{"zero window", "ANALYSIS_WINDOW_SECONDS", "0"},
		{"negative beat", "BEAT_LENGTH_SECONDS", "-1"},
		{"inverted band", "MIN_FREQUENCY_HZ", "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAnalysisOptions(t *testing.T) {
	a := AnalysisConfig{
		ReferencePitchHz: 442,
		NoiseFloorDb:     -50,
		MinFrequencyHz:   60,
		MaxFrequencyHz:   1500,
		PeakRatio:        6,
		RestToken:        "s",
		ReferenceOctave:  3,
	}

	opts, err := a.Options()
	require.NoError(t, err)

	name, hz := opts.Alphabet.Reference()
	assert.Equal(t, "A4", name)
	assert.Equal(t, 442.0, hz)
	assert.Equal(t, -50.0, opts.Estimator.NoiseFloorDb)
	assert.Equal(t, 60.0, opts.Estimator.MinFrequency)
	assert.Equal(t, 1500.0, opts.Estimator.MaxFrequency)
	assert.Equal(t, 6.0, opts.Estimator.PeakRatio)
	assert.Equal(t, "s", opts.Renderer.RestToken)
	assert.Equal(t, 3, opts.Renderer.ReferenceOctave)
}

func TestAnalysisOptions_BadReference(t *testing.T) {
	_, err := AnalysisConfig{ReferencePitchHz: 0}.Options()
	assert.Error(t, err)
}

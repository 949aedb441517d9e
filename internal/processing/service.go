// Package processing turns uploaded recordings into stored note sequences and
// serves the per-sequence operations that need both the database and storage.
package processing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/echo/internal/audio"
	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/internal/storage"
	"github.com/RMahshie/echo/internal/transcription"
	"github.com/RMahshie/echo/pkg/models"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported recording format")
	ErrInvalidDisplayName = errors.New("display name cannot be empty or contain '/', '\\' or '.'")
	ErrRecordingTooLarge  = errors.New("recording too large")
	ErrRecordingTooLong   = errors.New("recording too long")
)

// RecordingInput is one uploaded recording.
type RecordingInput struct {
	Creator      string
	DisplayName  string
	Filename     string
	Audio        []byte
	MeteringData []float64
}

// Config holds the limits and analysis settings of the service.
type Config struct {
	WindowSeconds       float64
	BeatSeconds         float64
	MaxUploadBytes      int64
	MaxRecordingSeconds float64
}

type RecordingService interface {
	ProcessRecording(ctx context.Context, in RecordingInput) (*models.SequenceData, error)
	LoadSequenceData(ctx context.Context, seq *models.Sequence) (*models.SequenceData, error)
	LoadUserData(ctx context.Context, email string) (*models.UserData, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	RenderNotation(ctx context.Context, id uuid.UUID, beat float64) (string, error)
	RecordingURL(ctx context.Context, id uuid.UUID) (string, error)
	DeleteSequence(ctx context.Context, id uuid.UUID) error
}

type recordingService struct {
	users     repository.UserRepository
	folders   repository.FolderRepository
	sequences repository.SequenceRepository
	store     storage.ObjectStore
	converter audio.Converter
	analyzer  *transcription.Analyzer
	cfg       Config
}

func NewRecordingService(
	users repository.UserRepository,
	folders repository.FolderRepository,
	sequences repository.SequenceRepository,
	store storage.ObjectStore,
	converter audio.Converter,
	analyzer *transcription.Analyzer,
	cfg Config,
) RecordingService {
	return &recordingService{
		users:     users,
		folders:   folders,
		sequences: sequences,
		store:     store,
		converter: converter,
		analyzer:  analyzer,
		cfg:       cfg,
	}
}

// ValidateDisplayName rejects names that would be unsafe as file names.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\.`) {
		return ErrInvalidDisplayName
	}
	return nil
}

func (s *recordingService) ProcessRecording(ctx context.Context, in RecordingInput) (*models.SequenceData, error) {
	if err := ValidateDisplayName(in.DisplayName); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	contentType, ok := storage.AudioContentType(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(in.Audio)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrRecordingTooLarge, len(in.Audio))
	}

	if _, err := s.users.GetByEmail(ctx, in.Creator); err != nil {
		return nil, fmt.Errorf("creator %s: %w", in.Creator, err)
	}

	id := uuid.New()
	key := id.String()
	start := time.Now()

	// Everything written to storage is removed again if a later step fails.
	var stored []string
	committed := false
	defer func() {
		if committed {
			return
		}
		for _, k := range stored {
			if err := s.store.Delete(context.WithoutCancel(ctx), k); err != nil {
				log.Warn().Err(err).Str("key", k).Msg("Failed to remove object after failed processing")
			}
		}
	}()

	metering := in.MeteringData
	if metering == nil {
		metering = []float64{}
	}
	meteringJSON, err := json.Marshal(metering)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metering data: %w", err)
	}
	if err := s.store.Upload(ctx, storage.MeteringKey(key), meteringJSON, storage.ContentTypeMetering); err != nil {
		return nil, fmt.Errorf("failed to store metering data: %w", err)
	}
	stored = append(stored, storage.MeteringKey(key))

	if err := s.store.Upload(ctx, storage.AudioKey(key, ext), in.Audio, contentType); err != nil {
		return nil, fmt.Errorf("failed to store recording: %w", err)
	}
	stored = append(stored, storage.AudioKey(key, ext))

	seq, err := s.transcribe(ctx, in.Audio, ext)
	if err != nil {
		return nil, err
	}

	notes := s.analyzer.Codec().Encode(seq)
	if err := s.store.Upload(ctx, storage.NotesKey(key), []byte(notes), storage.ContentTypeNotes); err != nil {
		return nil, fmt.Errorf("failed to store notes: %w", err)
	}
	stored = append(stored, storage.NotesKey(key))

	record := &models.Sequence{
		ID:          key,
		Instrument:  1,
		Creator:     in.Creator,
		DisplayName: in.DisplayName,
		StorageKey:  key,
		AudioExt:    ext,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.sequences.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save sequence: %w", err)
	}
	committed = true

	log.Info().
		Str("sequenceID", key).
		Str("creator", in.Creator).
		Int("points", seq.Len()).
		Float64("duration", seq.Duration()).
		Dur("elapsed", time.Since(start)).
		Msg("Recording processed")

	return &models.SequenceData{
		ID:           key,
		DisplayName:  record.DisplayName,
		Created:      record.CreatedAt,
		Notes:        notes,
		MeteringData: metering,
	}, nil
}

// transcribe converts the upload to WAV, decodes it and runs the pipeline.
func (s *recordingService) transcribe(ctx context.Context, data []byte, ext string) (*transcription.Sequence, error) {
	wavData, err := s.converter.ToWAV(ctx, data, ext)
	if err != nil {
		return nil, err
	}

	buf, err := audio.DecodeWAV(bytes.NewReader(wavData))
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxRecordingSeconds > 0 && buf.Duration() > s.cfg.MaxRecordingSeconds {
		return nil, fmt.Errorf("%w: %.1fs", ErrRecordingTooLong, buf.Duration())
	}

	return s.analyzer.Analyze(buf.Samples, buf.SampleRate, s.cfg.WindowSeconds, s.cfg.BeatSeconds)
}

func (s *recordingService) LoadSequenceData(ctx context.Context, seq *models.Sequence) (*models.SequenceData, error) {
	notes, err := s.store.Download(ctx, storage.NotesKey(seq.StorageKey))
	if err != nil {
		return nil, fmt.Errorf("failed to load notes for %s: %w", seq.ID, err)
	}

	metering := []float64{}
	raw, err := s.store.Download(ctx, storage.MeteringKey(seq.StorageKey))
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &metering); err != nil {
			return nil, fmt.Errorf("failed to parse metering data for %s: %w", seq.ID, err)
		}
	case errors.Is(err, storage.ErrObjectNotFound):
		log.Warn().Str("sequenceID", seq.ID).Msg("Metering data missing")
	default:
		return nil, fmt.Errorf("failed to load metering data for %s: %w", seq.ID, err)
	}

	return &models.SequenceData{
		ID:           seq.ID,
		DisplayName:  seq.DisplayName,
		Created:      seq.CreatedAt,
		Notes:        string(notes),
		MeteringData: metering,
	}, nil
}

func (s *recordingService) LoadUserData(ctx context.Context, email string) (*models.UserData, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	data := &models.UserData{
		Username:  user.DisplayName,
		Folders:   []models.FolderData{},
		Sequences: []models.SequenceData{},
	}

	folders, err := s.folders.ListByOwner(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	for _, f := range folders {
		id, err := uuid.Parse(f.ID)
		if err != nil {
			return nil, err
		}
		ids, err := s.folders.ListSequenceIDs(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to list contents of folder %s: %w", f.ID, err)
		}
		data.Folders = append(data.Folders, models.FolderData{
			ID:          f.ID,
			DisplayName: f.DisplayName,
			Created:     f.CreatedAt,
			Sequences:   ids,
		})
	}

	sequences, err := s.sequences.ListByCreator(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list sequences: %w", err)
	}
	for _, seq := range sequences {
		sd, err := s.LoadSequenceData(ctx, seq)
		if err != nil {
			return nil, err
		}
		data.Sequences = append(data.Sequences, *sd)
	}

	return data, nil
}

func (s *recordingService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	seq, err := s.sequences.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.analyzer.Codec().Validate(notes); err != nil {
		return err
	}
	if err := s.store.Upload(ctx, storage.NotesKey(seq.StorageKey), []byte(notes), storage.ContentTypeNotes); err != nil {
		return fmt.Errorf("failed to store notes: %w", err)
	}

	log.Info().Str("sequenceID", seq.ID).Msg("Notes updated")
	return nil
}

func (s *recordingService) RenderNotation(ctx context.Context, id uuid.UUID, beat float64) (string, error) {
	if beat <= 0 {
		beat = s.cfg.BeatSeconds
	}

	seq, err := s.sequences.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	notes, err := s.store.Download(ctx, storage.NotesKey(seq.StorageKey))
	if err != nil {
		return "", fmt.Errorf("failed to load notes for %s: %w", seq.ID, err)
	}

	decoded, err := s.analyzer.Codec().Decode(string(notes))
	if err != nil {
		return "", err
	}
	return s.analyzer.RenderNotation(decoded, beat)
}

func (s *recordingService) RecordingURL(ctx context.Context, id uuid.UUID) (string, error) {
	seq, err := s.sequences.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.GenerateDownloadURL(ctx, storage.AudioKey(seq.StorageKey, seq.AudioExt))
}

// DeleteSequence removes the row first; objects left behind by a failed
// storage delete are only logged.
func (s *recordingService) DeleteSequence(ctx context.Context, id uuid.UUID) error {
	seq, err := s.sequences.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sequences.Delete(ctx, id); err != nil {
		return err
	}

	keys := []string{
		storage.AudioKey(seq.StorageKey, seq.AudioExt),
		storage.NotesKey(seq.StorageKey),
		storage.MeteringKey(seq.StorageKey),
	}
	for _, k := range keys {
		if err := s.store.Delete(ctx, k); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			log.Warn().Err(err).Str("sequenceID", seq.ID).Str("key", k).Msg("Failed to delete stored object")
		}
	}

	log.Info().Str("sequenceID", seq.ID).Msg("Sequence deleted")
	return nil
}

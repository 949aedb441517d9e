package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/echo/internal/processing"
	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/pkg/models"
)

const lilypondContentType = "text/x-lilypond; charset=utf-8"

// SequenceHandler handles sequence-related HTTP requests
type SequenceHandler struct {
	sequences  repository.SequenceRepository
	recordings processing.RecordingService
	urlExpiry  time.Duration
}

// NewSequenceHandler creates a new sequence handler
func NewSequenceHandler(sequences repository.SequenceRepository, recordings processing.RecordingService, urlExpiry time.Duration) *SequenceHandler {
	return &SequenceHandler{sequences: sequences, recordings: recordings, urlExpiry: urlExpiry}
}

// ProcessRecording accepts a multipart upload and returns the analyzed sequence
func (h *SequenceHandler) ProcessRecording(ctx context.Context, req *models.ProcessRecordingRequest) (*models.SequenceResponse, error) {
	form := req.RawBody

	files := form.File["file"]
	if len(files) == 0 {
		return nil, huma.Error400BadRequest("Missing file field")
	}
	header := files[0]

	user := formValue(form.Value, "user")
	if user == "" {
		return nil, huma.Error400BadRequest("Missing user field")
	}
	displayName := formValue(form.Value, "display_name")

	var metering []float64
	if raw := formValue(form.Value, "metering_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metering); err != nil {
			return nil, huma.Error400BadRequest("metering_data must be a JSON array of numbers", err)
		}
	}

	f, err := header.Open()
	if err != nil {
		return nil, huma.Error400BadRequest("Failed to read upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, huma.Error400BadRequest("Failed to read upload", err)
	}

	log.Info().
		Str("user", user).
		Str("filename", header.Filename).
		Int("size", len(data)).
		Msg("Processing recording")

	seq, err := h.recordings.ProcessRecording(ctx, processing.RecordingInput{
		Creator:      strings.ToLower(user),
		DisplayName:  displayName,
		Filename:     header.Filename,
		Audio:        data,
		MeteringData: metering,
	})
	if err != nil {
		return nil, statusError("Failed to process recording", err)
	}

	return &models.SequenceResponse{Body: *seq}, nil
}

// GetRecordingURL returns a pre-signed URL for the raw recording
func (h *SequenceHandler) GetRecordingURL(ctx context.Context, req *models.SequenceIDRequest) (*models.RecordingURLResponse, error) {
	id, err := parseID(req.ID, "sequence")
	if err != nil {
		return nil, err
	}

	url, err := h.recordings.RecordingURL(ctx, id)
	if err != nil {
		return nil, statusError("Failed to generate download URL", err)
	}

	resp := &models.RecordingURLResponse{}
	resp.Body.DownloadURL = url
	resp.Body.ExpiresIn = int(h.urlExpiry.Seconds())
	return resp, nil
}

// RenameSequence changes a sequence's display name
func (h *SequenceHandler) RenameSequence(ctx context.Context, req *models.RenameRequest) (*models.MessageResponse, error) {
	id, err := parseID(req.ID, "sequence")
	if err != nil {
		return nil, err
	}
	if err := processing.ValidateDisplayName(req.Body.DisplayName); err != nil {
		return nil, statusError("Failed to rename sequence", err)
	}

	if err := h.sequences.Rename(ctx, id, req.Body.DisplayName); err != nil {
		return nil, statusError("Failed to rename sequence", err)
	}

	log.Info().Str("sequenceID", req.ID).Str("displayName", req.Body.DisplayName).Msg("Sequence renamed")
	return models.NewMessage("Sequence renamed"), nil
}

// UpdateNotes replaces the stored notes after checking them against the grammar
func (h *SequenceHandler) UpdateNotes(ctx context.Context, req *models.UpdateNotesRequest) (*models.MessageResponse, error) {
	id, err := parseID(req.ID, "sequence")
	if err != nil {
		return nil, err
	}

	if err := h.recordings.UpdateNotes(ctx, id, req.Body.Notes); err != nil {
		return nil, statusError("Failed to update notes", err)
	}
	return models.NewMessage("Notes updated"), nil
}

// GetNotation renders the stored notes as LilyPond source
func (h *SequenceHandler) GetNotation(ctx context.Context, req *models.NotationRequest) (*models.NotationResponse, error) {
	id, err := parseID(req.ID, "sequence")
	if err != nil {
		return nil, err
	}

	ly, err := h.recordings.RenderNotation(ctx, id, req.Beat)
	if err != nil {
		return nil, statusError(fmt.Sprintf("Failed to render sequence %s", req.ID), err)
	}

	return &models.NotationResponse{
		ContentType: lilypondContentType,
		Body:        []byte(ly),
	}, nil
}

// DeleteSequence removes a sequence, its folder memberships and stored objects
func (h *SequenceHandler) DeleteSequence(ctx context.Context, req *models.SequenceIDRequest) (*models.MessageResponse, error) {
	id, err := parseID(req.ID, "sequence")
	if err != nil {
		return nil, err
	}

	if err := h.recordings.DeleteSequence(ctx, id); err != nil {
		return nil, statusError("Failed to delete sequence", err)
	}
	return models.NewMessage("Sequence deleted"), nil
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

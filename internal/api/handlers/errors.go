package handlers

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/echo/internal/audio"
	"github.com/RMahshie/echo/internal/processing"
	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/internal/storage"
	"github.com/RMahshie/echo/internal/transcription"
)

// statusError maps service and repository errors onto HTTP errors. msg is
// used for failures the client cannot fix.
func statusError(msg string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrObjectNotFound):
		return huma.Error404NotFound("Not found", err)
	case errors.Is(err, repository.ErrConflict):
		return huma.Error409Conflict("Already exists", err)
	case errors.Is(err, processing.ErrUnsupportedFormat):
		return huma.NewError(http.StatusUnsupportedMediaType, "Recording format not supported", err)
	case errors.Is(err, processing.ErrRecordingTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, "Recording too large", err)
	case errors.Is(err, processing.ErrInvalidDisplayName),
		errors.Is(err, transcription.ErrMalformedSequence),
		errors.Is(err, transcription.ErrInvalidParameter):
		return huma.Error400BadRequest(err.Error(), err)
	case errors.Is(err, processing.ErrRecordingTooLong),
		errors.Is(err, transcription.ErrDecode),
		errors.Is(err, transcription.ErrInvalidFrequency),
		errors.Is(err, transcription.ErrUnsupportedRest),
		errors.Is(err, audio.ErrInvalidWAV),
		errors.Is(err, audio.ErrConversionFailed):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	}

	log.Error().Err(err).Msg(msg)
	return huma.Error500InternalServerError(msg, err)
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest("Invalid "+what+" ID", err)
	}
	return id, nil
}

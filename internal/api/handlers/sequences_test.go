package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/echo/internal/processing"
	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/internal/transcription"
	"github.com/RMahshie/echo/pkg/models"
)

var testSequenceID = uuid.MustParse("3f1c2a44-8b7e-4d55-9a0e-2f6b1c9d7e10")

// buildForm encodes fields and an optional file, then parses them back the
// way the server would.
func buildForm(t *testing.T, fields map[string]string, filename string, content []byte) *multipart.Form {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form
}

func TestProcessRecordingHandler(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		filename   string
		setup      func(*MockRecordingService)
		wantStatus int
	}{
		{
			name:     "accepted",
			fields:   map[string]string{"user": "Ada@example.com", "display_name": "Warmup", "metering_data": "[-10.5, -3]"},
			filename: "take.m4a",
			setup: func(m *MockRecordingService) {
				m.On("ProcessRecording", mock.Anything, processing.RecordingInput{
					Creator:      "ada@example.com",
					DisplayName:  "Warmup",
					Filename:     "take.m4a",
					Audio:        []byte("audio"),
					MeteringData: []float64{-10.5, -3},
				}).Return(&models.SequenceData{ID: testSequenceID.String(), Notes: "A41.0"}, nil)
			},
		},
		{
			name:       "missing file",
			fields:     map[string]string{"user": "ada@example.com", "display_name": "Warmup"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing user",
			fields:     map[string]string{"display_name": "Warmup"},
			filename:   "take.m4a",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad metering",
			fields:     map[string]string{"user": "ada@example.com", "display_name": "Warmup", "metering_data": "loud"},
			filename:   "take.m4a",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:     "unsupported format",
			fields:   map[string]string{"user": "ada@example.com", "display_name": "Warmup"},
			filename: "take.txt",
			setup: func(m *MockRecordingService) {
				m.On("ProcessRecording", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: \".txt\"", processing.ErrUnsupportedFormat))
			},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:     "silent recording cannot be decoded",
			fields:   map[string]string{"user": "ada@example.com", "display_name": "Warmup"},
			filename: "take.wav",
			setup: func(m *MockRecordingService) {
				m.On("ProcessRecording", mock.Anything, mock.Anything).Return(nil, transcription.ErrDecode)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recordings := &MockRecordingService{}
			if tt.setup != nil {
				tt.setup(recordings)
			}
			handler := NewSequenceHandler(&MockSequenceRepository{}, recordings, 15*time.Minute)

			form := buildForm(t, tt.fields, tt.filename, []byte("audio"))
			resp, err := handler.ProcessRecording(context.Background(), &models.ProcessRecordingRequest{RawBody: *form})

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "A41.0", resp.Body.Notes)
			} else {
				assertStatus(t, err, tt.wantStatus)
			}
			recordings.AssertExpectations(t)
		})
	}
}

func TestGetRecordingURL(t *testing.T) {
	recordings := &MockRecordingService{}
	recordings.On("RecordingURL", mock.Anything, testSequenceID).Return("https://example.com/take.m4a", nil)

	handler := NewSequenceHandler(&MockSequenceRepository{}, recordings, 15*time.Minute)
	resp, err := handler.GetRecordingURL(context.Background(), &models.SequenceIDRequest{ID: testSequenceID.String()})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/take.m4a", resp.Body.DownloadURL)
	assert.Equal(t, 900, resp.Body.ExpiresIn)

	_, err = handler.GetRecordingURL(context.Background(), &models.SequenceIDRequest{ID: "not-a-uuid"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestRenameSequence(t *testing.T) {
	tests := []struct {
		name       string
		newName    string
		repoErr    error
		callsRepo  bool
		wantStatus int
	}{
		{name: "renamed", newName: "Etude", callsRepo: true},
		{name: "illegal characters", newName: "../etc", wantStatus: http.StatusBadRequest},
		{name: "unknown sequence", newName: "Etude", repoErr: repository.ErrNotFound, callsRepo: true, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sequences := &MockSequenceRepository{}
			if tt.callsRepo {
				sequences.On("Rename", mock.Anything, testSequenceID, tt.newName).Return(tt.repoErr)
			}
			handler := NewSequenceHandler(sequences, &MockRecordingService{}, time.Minute)

			req := &models.RenameRequest{ID: testSequenceID.String()}
			req.Body.DisplayName = tt.newName

			_, err := handler.RenameSequence(context.Background(), req)
			if tt.wantStatus == 0 {
				assert.NoError(t, err)
			} else {
				assertStatus(t, err, tt.wantStatus)
			}
			sequences.AssertExpectations(t)
		})
	}
}

func TestUpdateNotesHandler(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "stored"},
		{name: "grammar violation", svcErr: fmt.Errorf("%w: token 1", transcription.ErrMalformedSequence), wantStatus: http.StatusBadRequest},
		{name: "unknown sequence", svcErr: repository.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recordings := &MockRecordingService{}
			recordings.On("UpdateNotes", mock.Anything, testSequenceID, "A40.5,C41.0").Return(tt.svcErr)
			handler := NewSequenceHandler(&MockSequenceRepository{}, recordings, time.Minute)

			req := &models.UpdateNotesRequest{ID: testSequenceID.String()}
			req.Body.Notes = "A40.5,C41.0"

			_, err := handler.UpdateNotes(context.Background(), req)
			if tt.wantStatus == 0 {
				assert.NoError(t, err)
			} else {
				assertStatus(t, err, tt.wantStatus)
			}
			recordings.AssertExpectations(t)
		})
	}
}

func TestGetNotation(t *testing.T) {
	ly := "\\relative c' {\n    \\key c \\major\n    \\time 4/4\na'1 \n}"

	recordings := &MockRecordingService{}
	recordings.On("RenderNotation", mock.Anything, testSequenceID, 0.5).Return(ly, nil)
	handler := NewSequenceHandler(&MockSequenceRepository{}, recordings, time.Minute)

	resp, err := handler.GetNotation(context.Background(), &models.NotationRequest{ID: testSequenceID.String(), Beat: 0.5})
	require.NoError(t, err)
	assert.Equal(t, lilypondContentType, resp.ContentType)
	assert.Equal(t, ly, string(resp.Body))

	recordings.On("RenderNotation", mock.Anything, testSequenceID, 0.0).Return("", transcription.ErrUnsupportedRest)
	_, err = handler.GetNotation(context.Background(), &models.NotationRequest{ID: testSequenceID.String()})
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

func TestDeleteSequenceHandler(t *testing.T) {
	recordings := &MockRecordingService{}
	recordings.On("DeleteSequence", mock.Anything, testSequenceID).Return(nil)
	handler := NewSequenceHandler(&MockSequenceRepository{}, recordings, time.Minute)

	resp, err := handler.DeleteSequence(context.Background(), &models.SequenceIDRequest{ID: testSequenceID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Sequence deleted", resp.Body.Message)
	recordings.AssertExpectations(t)
}

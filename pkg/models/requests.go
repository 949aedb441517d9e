package models

import (
	"mime/multipart"
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// NewMessage builds a MessageResponse.
func NewMessage(msg string) *MessageResponse {
	resp := &MessageResponse{}
	resp.Body.Message = msg
	return resp
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" maxLength:"255" required:"true" doc:"User email, the unique identifier"`
		Username string `json:"username" minLength:"1" maxLength:"100" required:"true" doc:"User display name"`
	}
}

// GetUserDataRequest represents a request for a user's library
type GetUserDataRequest struct {
	Email string `path:"email" doc:"User email"`
}

// GetUserDataResponse returns a user's folders and sequences
type GetUserDataResponse struct {
	Body UserData
}

// ProcessRecordingRequest is a multipart upload with the fields
// file, user, display_name and metering_data.
type ProcessRecordingRequest struct {
	RawBody multipart.Form
}

// SequenceResponse returns one sequence
type SequenceResponse struct {
	Body SequenceData
}

// SequenceIDRequest addresses a sequence
type SequenceIDRequest struct {
	ID string `path:"id" doc:"Sequence ID"`
}

// RecordingURLResponse returns a download URL for the raw recording
type RecordingURLResponse struct {
	Body struct {
		DownloadURL string `json:"download_url" doc:"Pre-signed URL for the recording"`
		ExpiresIn   int    `json:"expires_in" doc:"URL expiration time in seconds"`
	}
}

// RenameRequest renames a sequence or folder
type RenameRequest struct {
	ID   string `path:"id" doc:"Resource ID"`
	Body struct {
		DisplayName string `json:"display_name" minLength:"1" maxLength:"100" required:"true" doc:"New display name"`
	}
}

// UpdateNotesRequest replaces a sequence's note data
type UpdateNotesRequest struct {
	ID   string `path:"id" doc:"Sequence ID"`
	Body struct {
		Notes string `json:"notes" minLength:"1" required:"true" example:"A40.5,C41.0" doc:"Edited note sequence"`
	}
}

// NotationRequest asks for a sequence rendered as LilyPond
type NotationRequest struct {
	ID   string  `path:"id" doc:"Sequence ID"`
	Beat float64 `query:"beat" minimum:"0" doc:"Beat length in seconds; defaults to the service setting"`
}

// NotationResponse carries LilyPond source
type NotationResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// CreateFolderRequest represents a request to create a folder
type CreateFolderRequest struct {
	Body struct {
		DisplayName string `json:"display_name" minLength:"1" maxLength:"100" required:"true" doc:"Folder display name"`
		Owner       string `json:"owner" required:"true" doc:"Owner email"`
	}
}

// CreateFolderResponse returns the new folder ID
type CreateFolderResponse struct {
	Body struct {
		FolderID string `json:"folder_id" doc:"Folder ID"`
	}
}

// FolderIDRequest addresses a folder
type FolderIDRequest struct {
	ID string `path:"id" doc:"Folder ID"`
}

// UpdateFolderContentsRequest replaces the sequences held by a folder
type UpdateFolderContentsRequest struct {
	ID   string `path:"id" doc:"Folder ID"`
	Body struct {
		Sequences []string `json:"sequences" required:"true" doc:"IDs of the sequences the folder should contain"`
	}
}

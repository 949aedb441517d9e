package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/echo/internal/api/handlers"
	"github.com/RMahshie/echo/internal/processing"
	"github.com/RMahshie/echo/internal/repository"
)

// Dependencies are the collaborators the handlers need.
type Dependencies struct {
	Users          repository.UserRepository
	Folders        repository.FolderRepository
	Sequences      repository.SequenceRepository
	Recordings     processing.RecordingService
	MaxUploadBytes int64
	URLExpiry      time.Duration
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, deps Dependencies) {
	userHandler := handlers.NewUserHandler(deps.Users, deps.Recordings)
	sequenceHandler := handlers.NewSequenceHandler(deps.Sequences, deps.Recordings, deps.URLExpiry)
	folderHandler := handlers.NewFolderHandler(deps.Folders, deps.Sequences)

	// Users
	huma.Register(api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/users",
		Summary:       "Create a user",
		Description:   "Registers a user; the email must not be taken",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, userHandler.CreateUser)

	huma.Register(api, huma.Operation{
		OperationID: "getUserData",
		Method:      http.MethodGet,
		Path:        "/api/users/{email}",
		Summary:     "Get user data",
		Description: "Returns the user's folders and sequences with notes and metering data",
		Tags:        []string{"Users"},
	}, userHandler.GetUserData)

	// Sequences
	huma.Register(api, huma.Operation{
		OperationID:     "processRecording",
		Method:          http.MethodPost,
		Path:            "/api/sequences",
		Summary:         "Upload a recording",
		Description:     "Stores a recording, transcribes it and returns the resulting sequence",
		Tags:            []string{"Sequences"},
		MaxBodyBytes:    deps.MaxUploadBytes,
		BodyReadTimeout: 2 * time.Minute,
		DefaultStatus:   http.StatusCreated,
	}, sequenceHandler.ProcessRecording)

	huma.Register(api, huma.Operation{
		OperationID: "getRecordingURL",
		Method:      http.MethodGet,
		Path:        "/api/sequences/{id}/recording",
		Summary:     "Get recording URL",
		Description: "Returns a pre-signed download URL for the raw recording",
		Tags:        []string{"Sequences"},
	}, sequenceHandler.GetRecordingURL)

	huma.Register(api, huma.Operation{
		OperationID: "renameSequence",
		Method:      http.MethodPut,
		Path:        "/api/sequences/{id}/name",
		Summary:     "Rename a sequence",
		Tags:        []string{"Sequences"},
	}, sequenceHandler.RenameSequence)

	huma.Register(api, huma.Operation{
		OperationID: "updateNotes",
		Method:      http.MethodPut,
		Path:        "/api/sequences/{id}/notes",
		Summary:     "Replace notes",
		Description: "Replaces the stored notes after checking them against the note grammar",
		Tags:        []string{"Sequences"},
	}, sequenceHandler.UpdateNotes)

	huma.Register(api, huma.Operation{
		OperationID: "getNotation",
		Method:      http.MethodGet,
		Path:        "/api/sequences/{id}/notation",
		Summary:     "Render notation",
		Description: "Renders the stored notes as LilyPond source",
		Tags:        []string{"Sequences"},
	}, sequenceHandler.GetNotation)

	huma.Register(api, huma.Operation{
		OperationID: "deleteSequence",
		Method:      http.MethodDelete,
		Path:        "/api/sequences/{id}",
		Summary:     "Delete a sequence",
		Description: "Deletes the sequence, its folder memberships and its stored objects",
		Tags:        []string{"Sequences"},
	}, sequenceHandler.DeleteSequence)

	// Folders
	huma.Register(api, huma.Operation{
		OperationID:   "createFolder",
		Method:        http.MethodPost,
		Path:          "/api/folders",
		Summary:       "Create a folder",
		Tags:          []string{"Folders"},
		DefaultStatus: http.StatusCreated,
	}, folderHandler.CreateFolder)

	huma.Register(api, huma.Operation{
		OperationID: "renameFolder",
		Method:      http.MethodPut,
		Path:        "/api/folders/{id}/name",
		Summary:     "Rename a folder",
		Tags:        []string{"Folders"},
	}, folderHandler.RenameFolder)

	huma.Register(api, huma.Operation{
		OperationID: "updateFolderContents",
		Method:      http.MethodPut,
		Path:        "/api/folders/{id}/sequences",
		Summary:     "Replace folder contents",
		Description: "Sets the folder's sequences; each must exist and belong to the folder owner",
		Tags:        []string{"Folders"},
	}, folderHandler.UpdateFolderContents)

	huma.Register(api, huma.Operation{
		OperationID: "deleteFolder",
		Method:      http.MethodDelete,
		Path:        "/api/folders/{id}",
		Summary:     "Delete a folder",
		Description: "Deletes the folder; the sequences it held are kept",
		Tags:        []string{"Folders"},
	}, folderHandler.DeleteFolder)
}

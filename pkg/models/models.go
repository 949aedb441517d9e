package models

import (
	"time"
)

// User is an account, keyed by email.
type User struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Folder groups sequences owned by one user.
type Folder struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sequence is the metadata row for one analyzed recording. The recording,
// its notes and its metering data live in object storage under StorageKey.
type Sequence struct {
	ID          string    `json:"id"`
	Instrument  int       `json:"instrument"`
	BPM         int       `json:"bpm"`
	Creator     string    `json:"creator"`
	DisplayName string    `json:"display_name"`
	StorageKey  string    `json:"storage_key"`
	AudioExt    string    `json:"audio_ext"`
	CreatedAt   time.Time `json:"created_at"`
}

// SequenceData is a sequence as the client sees it.
type SequenceData struct {
	ID           string    `json:"id" doc:"Sequence ID"`
	DisplayName  string    `json:"display_name" doc:"Sequence display name"`
	Created      time.Time `json:"created" doc:"Creation timestamp"`
	Notes        string    `json:"notes" example:"A40.5,C41.0" doc:"Comma-delimited pitch+duration tokens"`
	MeteringData []float64 `json:"metering_data" doc:"Recorder level metering in dB"`
}

// FolderData is a folder with the IDs of the sequences it contains.
type FolderData struct {
	ID          string    `json:"id" doc:"Folder ID"`
	DisplayName string    `json:"display_name" doc:"Folder display name"`
	Created     time.Time `json:"created" doc:"Creation timestamp"`
	Sequences   []string  `json:"sequences" doc:"IDs of contained sequences"`
}

// UserData is everything the client needs to draw a user's library.
type UserData struct {
	Username  string         `json:"username" doc:"User display name"`
	Folders   []FolderData   `json:"folders" doc:"User folders"`
	Sequences []SequenceData `json:"sequences" doc:"User sequences"`
}

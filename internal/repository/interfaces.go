package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/echo/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a row, or a row it references, does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("already exists")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// FolderRepository defines the interface for folder data operations
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.Folder, error)
	Rename(ctx context.Context, id uuid.UUID, displayName string) error
	ListSequenceIDs(ctx context.Context, id uuid.UUID) ([]string, error)
	ReplaceContents(ctx context.Context, id uuid.UUID, sequenceIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SequenceRepository defines the interface for sequence metadata operations
type SequenceRepository interface {
	Create(ctx context.Context, seq *models.Sequence) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sequence, error)
	ListByCreator(ctx context.Context, creator string) ([]*models.Sequence, error)
	Rename(ctx context.Context, id uuid.UUID, displayName string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

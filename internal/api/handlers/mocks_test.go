package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/RMahshie/echo/internal/processing"
	"github.com/RMahshie/echo/pkg/models"
)

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockFolderRepository implements repository.FolderRepository for testing
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockFolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*models.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Folder, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]*models.Folder), args.Error(1)
}

func (m *MockFolderRepository) Rename(ctx context.Context, id uuid.UUID, displayName string) error {
	args := m.Called(ctx, id, displayName)
	return args.Error(0)
}

func (m *MockFolderRepository) ListSequenceIDs(ctx context.Context, id uuid.UUID) ([]string, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFolderRepository) ReplaceContents(ctx context.Context, id uuid.UUID, sequenceIDs []uuid.UUID) error {
	args := m.Called(ctx, id, sequenceIDs)
	return args.Error(0)
}

func (m *MockFolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSequenceRepository implements repository.SequenceRepository for testing
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Create(ctx context.Context, seq *models.Sequence) error {
	args := m.Called(ctx, seq)
	return args.Error(0)
}

func (m *MockSequenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sequence, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Sequence), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSequenceRepository) ListByCreator(ctx context.Context, creator string) ([]*models.Sequence, error) {
	args := m.Called(ctx, creator)
	return args.Get(0).([]*models.Sequence), args.Error(1)
}

func (m *MockSequenceRepository) Rename(ctx context.Context, id uuid.UUID, displayName string) error {
	args := m.Called(ctx, id, displayName)
	return args.Error(0)
}

func (m *MockSequenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecordingService implements processing.RecordingService for testing
type MockRecordingService struct {
	mock.Mock
}

func (m *MockRecordingService) ProcessRecording(ctx context.Context, in processing.RecordingInput) (*models.SequenceData, error) {
	args := m.Called(ctx, in)
	if d := args.Get(0); d != nil {
		return d.(*models.SequenceData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordingService) LoadSequenceData(ctx context.Context, seq *models.Sequence) (*models.SequenceData, error) {
	args := m.Called(ctx, seq)
	if d := args.Get(0); d != nil {
		return d.(*models.SequenceData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordingService) LoadUserData(ctx context.Context, email string) (*models.UserData, error) {
	args := m.Called(ctx, email)
	if d := args.Get(0); d != nil {
		return d.(*models.UserData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordingService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}

func (m *MockRecordingService) RenderNotation(ctx context.Context, id uuid.UUID, beat float64) (string, error) {
	args := m.Called(ctx, id, beat)
	return args.String(0), args.Error(1)
}

func (m *MockRecordingService) RecordingURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockRecordingService) DeleteSequence(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package processing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

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

// MockObjectStore implements storage.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStore) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MockConverter implements audio.Converter for testing
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) ToWAV(ctx context.Context, data []byte, ext string) ([]byte, error) {
	args := m.Called(ctx, data, ext)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

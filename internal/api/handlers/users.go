package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/echo/internal/processing"
	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/pkg/models"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users      repository.UserRepository
	recordings processing.RecordingService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users repository.UserRepository, recordings processing.RecordingService) *UserHandler {
	return &UserHandler{users: users, recordings: recordings}
}

// CreateUser registers a user; emails are unique
func (h *UserHandler) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.MessageResponse, error) {
	user := &models.User{
		Email:       strings.ToLower(strings.TrimSpace(req.Body.Email)),
		DisplayName: strings.TrimSpace(req.Body.Username),
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.users.Create(ctx, user); err != nil {
		return nil, statusError("Failed to create user", err)
	}

	log.Info().Str("email", user.Email).Msg("User created")
	return models.NewMessage("User created"), nil
}

// GetUserData returns the user's folders and sequences
func (h *UserHandler) GetUserData(ctx context.Context, req *models.GetUserDataRequest) (*models.GetUserDataResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	data, err := h.recordings.LoadUserData(ctx, email)
	if err != nil {
		return nil, statusError("Failed to load user data", err)
	}

	log.Info().
		Str("email", email).
		Int("folders", len(data.Folders)).
		Int("sequences", len(data.Sequences)).
		Msg("Returning user data")
	return &models.GetUserDataResponse{Body: *data}, nil
}

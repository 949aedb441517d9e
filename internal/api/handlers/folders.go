package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/pkg/models"
)

// FolderHandler handles folder-related HTTP requests
type FolderHandler struct {
	folders   repository.FolderRepository
	sequences repository.SequenceRepository
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders repository.FolderRepository, sequences repository.SequenceRepository) *FolderHandler {
	return &FolderHandler{folders: folders, sequences: sequences}
}

// CreateFolder creates an empty folder for the owner
func (h *FolderHandler) CreateFolder(ctx context.Context, req *models.CreateFolderRequest) (*models.CreateFolderResponse, error) {
	folder := &models.Folder{
		ID:          uuid.New().String(),
		DisplayName: strings.TrimSpace(req.Body.DisplayName),
		Owner:       strings.ToLower(strings.TrimSpace(req.Body.Owner)),
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.folders.Create(ctx, folder); err != nil {
		return nil, statusError("Failed to create folder", err)
	}

	log.Info().Str("folderID", folder.ID).Str("owner", folder.Owner).Msg("Folder created")

	resp := &models.CreateFolderResponse{}
	resp.Body.FolderID = folder.ID
	return resp, nil
}

// RenameFolder changes a folder's display name
func (h *FolderHandler) RenameFolder(ctx context.Context, req *models.RenameRequest) (*models.MessageResponse, error) {
	id, err := parseID(req.ID, "folder")
	if err != nil {
		return nil, err
	}

	if err := h.folders.Rename(ctx, id, strings.TrimSpace(req.Body.DisplayName)); err != nil {
		return nil, statusError("Failed to rename folder", err)
	}
	return models.NewMessage("Folder renamed"), nil
}

// UpdateFolderContents replaces the folder's sequences. Every sequence must
// exist and belong to the folder's owner.
func (h *FolderHandler) UpdateFolderContents(ctx context.Context, req *models.UpdateFolderContentsRequest) (*models.MessageResponse, error) {
	id, err := parseID(req.ID, "folder")
	if err != nil {
		return nil, err
	}

	folder, err := h.folders.GetByID(ctx, id)
	if err != nil {
		return nil, statusError("Failed to load folder", err)
	}

	ids := make([]uuid.UUID, 0, len(req.Body.Sequences))
	for _, raw := range req.Body.Sequences {
		sid, err := parseID(raw, "sequence")
		if err != nil {
			return nil, err
		}
		seq, err := h.sequences.GetByID(ctx, sid)
		if err != nil {
			return nil, statusError("Failed to load sequence", fmt.Errorf("sequence %s: %w", raw, err))
		}
		if seq.Creator != folder.Owner {
			return nil, huma.Error403Forbidden(fmt.Sprintf("Sequence %s belongs to another user", raw))
		}
		ids = append(ids, sid)
	}

	if err := h.folders.ReplaceContents(ctx, id, ids); err != nil {
		return nil, statusError("Failed to update folder", err)
	}

	log.Info().Str("folderID", req.ID).Int("sequences", len(ids)).Msg("Folder contents updated")
	return models.NewMessage("Folder updated"), nil
}

// DeleteFolder removes a folder; the sequences it held are kept
func (h *FolderHandler) DeleteFolder(ctx context.Context, req *models.FolderIDRequest) (*models.MessageResponse, error) {
	id, err := parseID(req.ID, "folder")
	if err != nil {
		return nil, err
	}

	if err := h.folders.Delete(ctx, id); err != nil {
		return nil, statusError("Failed to delete folder", err)
	}
	return models.NewMessage("Folder deleted"), nil
}

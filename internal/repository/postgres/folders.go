package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/pkg/models"
)

// PostgresFolderRepository implements FolderRepository for PostgreSQL
type PostgresFolderRepository struct {
	db *sql.DB
}

// NewPostgresFolderRepository creates a new PostgreSQL folder repository
func NewPostgresFolderRepository(db *sql.DB) repository.FolderRepository {
	return &PostgresFolderRepository{db: db}
}

// Create inserts a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (id, display_name, owner, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, folder.ID, folder.DisplayName, folder.Owner, folder.CreatedAt)
	return translate(err)
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	query := `
		SELECT id, display_name, owner, created_at
		FROM folders
		WHERE id = $1`

	var folder models.Folder
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&folder.ID,
		&folder.DisplayName,
		&folder.Owner,
		&folder.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &folder, nil
}

// ListByOwner retrieves a user's folders, oldest first
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Folder, error) {
	query := `
		SELECT id, display_name, owner, created_at
		FROM folders
		WHERE owner = $1
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(&folder.ID, &folder.DisplayName, &folder.Owner, &folder.CreatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, &folder)
	}

	return folders, rows.Err()
}

// Rename updates a folder's display name
func (r *PostgresFolderRepository) Rename(ctx context.Context, id uuid.UUID, displayName string) error {
	query := `UPDATE folders SET display_name = $1 WHERE id = $2`
	return expectOne(r.db.ExecContext(ctx, query, displayName, id))
}

// ListSequenceIDs returns the sequences contained in a folder
func (r *PostgresFolderRepository) ListSequenceIDs(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence_id FROM folder_sequences WHERE folder_id = $1 ORDER BY sequence_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return nil, err
		}
		ids = append(ids, sid)
	}

	return ids, rows.Err()
}

// ReplaceContents sets the folder's sequences to exactly sequenceIDs in one transaction
func (r *PostgresFolderRepository) ReplaceContents(ctx context.Context, id uuid.UUID, sequenceIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM folder_sequences WHERE folder_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear folder contents: %w", err)
	}

	for _, sid := range sequenceIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO folder_sequences (folder_id, sequence_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, id, sid)
		if err != nil {
			return translate(err)
		}
	}

	return tx.Commit()
}

// Delete removes a folder; its memberships cascade
func (r *PostgresFolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id))
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/pkg/models"
)

// PostgresSequenceRepository implements SequenceRepository for PostgreSQL
type PostgresSequenceRepository struct {
	db *sql.DB
}

// NewPostgresSequenceRepository creates a new PostgreSQL sequence repository
func NewPostgresSequenceRepository(db *sql.DB) repository.SequenceRepository {
	return &PostgresSequenceRepository{db: db}
}

const sequenceColumns = `id, instrument, bpm, creator, display_name, storage_key, audio_ext, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSequence(row rowScanner) (*models.Sequence, error) {
	var seq models.Sequence
	err := row.Scan(
		&seq.ID,
		&seq.Instrument,
		&seq.BPM,
		&seq.Creator,
		&seq.DisplayName,
		&seq.StorageKey,
		&seq.AudioExt,
		&seq.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &seq, nil
}

// Create inserts a new sequence record
func (r *PostgresSequenceRepository) Create(ctx context.Context, seq *models.Sequence) error {
	query := `
		INSERT INTO sequences (` + sequenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		seq.ID,
		seq.Instrument,
		seq.BPM,
		seq.Creator,
		seq.DisplayName,
		seq.StorageKey,
		seq.AudioExt,
		seq.CreatedAt)

	return translate(err)
}

// GetByID retrieves a sequence by ID
func (r *PostgresSequenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sequence, error) {
	query := `
		SELECT ` + sequenceColumns + `
		FROM sequences
		WHERE id = $1`

	seq, err := scanSequence(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return seq, nil
}

// ListByCreator retrieves a user's sequences, newest first
func (r *PostgresSequenceRepository) ListByCreator(ctx context.Context, creator string) ([]*models.Sequence, error) {
	query := `
		SELECT ` + sequenceColumns + `
		FROM sequences
		WHERE creator = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, creator)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sequences []*models.Sequence
	for rows.Next() {
		seq, err := scanSequence(rows)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, seq)
	}

	return sequences, rows.Err()
}

// Rename updates a sequence's display name
func (r *PostgresSequenceRepository) Rename(ctx context.Context, id uuid.UUID, displayName string) error {
	query := `UPDATE sequences SET display_name = $1 WHERE id = $2`
	return expectOne(r.db.ExecContext(ctx, query, displayName, id))
}

// Delete removes a sequence; folder memberships cascade
func (r *PostgresSequenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM sequences WHERE id = $1`, id))
}

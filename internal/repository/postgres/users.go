package postgres

import (
	"context"
	"database/sql"

	"github.com/RMahshie/echo/internal/repository"
	"github.com/RMahshie/echo/pkg/models"
)

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sql.DB) repository.UserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, display_name, created_at)
		VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, user.Email, user.DisplayName, user.CreatedAt)
	return translate(err)
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT email, display_name, created_at
		FROM users
		WHERE email = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.Email, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"payroll_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq" // For pq.Error
)

// AuthRepository defines the interface for account-related database operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(userID string) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

// CreateUser inserts a new account row. The id is generated here; email and
// password hash stay empty for anonymous guest accounts.
func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (id, email, password_hash, display_name, is_anonymous, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	currentTime := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = currentTime
	user.UpdatedAt = currentTime

	_, err := executor.Exec(query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName,
		user.IsAnonymous, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func scanUserRow(row scanner) (*models.User, error) {
	user := &models.User{}
	var email, passwordHash, displayName sql.NullString

	err := row.Scan(
		&user.ID, &email, &passwordHash, &displayName,
		&user.IsAnonymous, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}

	if email.Valid {
		user.Email = &email.String
	}
	if passwordHash.Valid {
		user.PasswordHash = passwordHash.String
	}
	if displayName.Valid {
		user.DisplayName = &displayName.String
	}
	return user, nil
}

// FindUserByEmail retrieves an account by email. The password hash is
// populated for credential verification by the service layer.
func (r *authRepository) FindUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, display_name, is_anonymous, created_at, updated_at
	          FROM users WHERE email = $1`
	return scanUserRow(r.db.QueryRow(query, email))
}

// FindUserByID retrieves an account by id.
func (r *authRepository) FindUserByID(userID string) (*models.User, error) {
	query := `SELECT id, email, password_hash, display_name, is_anonymous, created_at, updated_at
	          FROM users WHERE id = $1`
	return scanUserRow(r.db.QueryRow(query, userID))
}

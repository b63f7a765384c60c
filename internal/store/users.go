package store

import (
	"database/sql"
	"errors"
	"strings"

	"chillbills/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// UserStore persists user accounts.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a UserStore backed by db.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user with the given bcrypt digest and returns the
// persisted record. The pre-checks give precise conflict errors; the UNIQUE
// constraints remain the source of truth and a constraint violation on
// insert is mapped to the same errors, so two concurrent registrations
// cannot both succeed.
func (s *UserStore) Create(username, email, passwordHash string) (*models.User, error) {
	var existing string
	err := s.db.QueryRow(`SELECT id FROM users WHERE username = $1`, username).Scan(&existing)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&existing)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: passwordHash,
	}

	query := `INSERT INTO users (id, username, email, password) VALUES ($1, $2, $3, $4)
	          RETURNING created_at, updated_at`
	err = s.db.QueryRow(query, user.ID, user.Username, user.Email, user.Password).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapUserConflict(err)
	}

	return &user, nil
}

func mapUserConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		if strings.Contains(pqErr.Constraint, "email") {
			return ErrEmailTaken
		}
		return ErrUsernameTaken
	}
	return err
}

// FindByUsername returns the user with the given username.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	return s.findOne(`SELECT id, username, email, password, created_at, updated_at
	                  FROM users WHERE username = $1`, username)
}

// FindByID returns the user with the given identifier.
func (s *UserStore) FindByID(id string) (*models.User, error) {
	return s.findOne(`SELECT id, username, email, password, created_at, updated_at
	                  FROM users WHERE id = $1`, id)
}

func (s *UserStore) findOne(query string, arg string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// DeleteWithExpenses removes the user and every expense they own in one
// transaction, expenses first, and returns the number of expenses removed.
func (s *UserStore) DeleteWithExpenses(userID string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	deletedExpenses, err := deleteExpensesForOwner(tx, userID)
	if err != nil {
		return 0, err
	}

	result, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return deletedExpenses, nil
}

// ClearAll wipes every user and expense. Used only by the admin clear
// endpoint.
func (s *UserStore) ClearAll() (deletedUsers, deletedExpenses int64, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM expenses`)
	if err != nil {
		return 0, 0, err
	}
	if deletedExpenses, err = result.RowsAffected(); err != nil {
		return 0, 0, err
	}

	result, err = tx.Exec(`DELETE FROM users`)
	if err != nil {
		return 0, 0, err
	}
	if deletedUsers, err = result.RowsAffected(); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return deletedUsers, deletedExpenses, nil
}

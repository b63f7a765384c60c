package database

import (
	"database/sql"
	"fmt"
)

// CreateTables creates all required tables in the database.
//
// The UNIQUE constraints on users.username and users.email are the source of
// truth for uniqueness; application-level existence checks only exist to
// produce friendlier error messages.
func CreateTables(db *sql.DB) error {
	if err := createUsersTable(db); err != nil {
		return err
	}
	return createExpensesTable(db)
}

func createUsersTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func createExpensesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS expenses (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL CHECK (amount > 0),
		category VARCHAR(50) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create expenses table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS expenses_user_date_idx ON expenses(user_id, date)`); err != nil {
		return fmt.Errorf("create expenses user/date index: %w", err)
	}
	return nil
}

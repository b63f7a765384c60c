package store

import (
	"database/sql"
	"errors"

	"chillbills/internal/models"

	"github.com/google/uuid"
)

// ExpenseStore persists expense records. Every query is scoped by the
// owner's user ID server-side; the owner is never caller-supplied input.
type ExpenseStore struct {
	db *sql.DB
}

// NewExpenseStore creates an ExpenseStore backed by db.
func NewExpenseStore(db *sql.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// Create validates the draft, assigns an identifier, and inserts the
// expense owned by userID.
func (s *ExpenseStore) Create(userID string, draft *models.ExpenseDraft) (*models.Expense, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	expense := models.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      draft.Amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.ParsedDate(),
	}

	query := `INSERT INTO expenses (id, user_id, amount, category, description, date)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.Exec(query,
		expense.ID, expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Date)
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// ListByOwner returns every expense owned by userID. Order is unspecified;
// callers sort when they need to.
func (s *ExpenseStore) ListByOwner(userID string) ([]models.Expense, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, amount, category, description, date FROM expenses WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Get returns one expense owned by userID. A missing record and a record
// owned by someone else both yield ErrExpenseNotFound.
func (s *ExpenseStore) Get(userID, id string) (*models.Expense, error) {
	var e models.Expense
	err := s.db.QueryRow(
		`SELECT id, user_id, amount, category, description, date FROM expenses WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Update fully replaces the mutable fields of an expense owned by userID.
// There is no version check; concurrent updates are last-write-wins.
func (s *ExpenseStore) Update(userID, id string, draft *models.ExpenseDraft) (*models.Expense, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	expense := models.Expense{
		ID:          id,
		UserID:      userID,
		Amount:      draft.Amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.ParsedDate(),
	}

	query := `UPDATE expenses
	          SET amount = $1, category = $2, description = $3, date = $4
	          WHERE id = $5 AND user_id = $6`
	result, err := s.db.Exec(query,
		expense.Amount, expense.Category, expense.Description, expense.Date, id, userID)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrExpenseNotFound
	}

	return &expense, nil
}

// Delete removes one expense owned by userID, with the same collapsed
// not-found behavior as Get.
func (s *ExpenseStore) Delete(userID, id string) error {
	result, err := s.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// DeleteAllForOwner removes every expense owned by userID and reports how
// many were removed. Account deletion performs the same removal through
// deleteExpensesForOwner inside its transaction.
func (s *ExpenseStore) DeleteAllForOwner(userID string) (int64, error) {
	return deleteExpensesForOwner(s.db, userID)
}

// execer is satisfied by both *sql.DB and *sql.Tx, so the bulk deletion
// can run standalone or inside the account-deletion transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func deleteExpensesForOwner(e execer, userID string) (int64, error) {
	result, err := e.Exec(`DELETE FROM expenses WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

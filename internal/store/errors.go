package store

import "errors"

var (
	// ErrUsernameTaken and ErrEmailTaken report registration conflicts.
	// They are field-specific on purpose; see the registration handler.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrExpenseNotFound covers both "no such expense" and "expense owned
	// by someone else". The two cases are indistinguishable to callers so
	// record existence cannot be probed across accounts.
	ErrExpenseNotFound = errors.New("expense not found")
)

package models

import (
	"regexp"
	"strings"
	"time"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User represents a registered account. The Password field holds the bcrypt
// digest and is never serialized in responses.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Registration is the request body for creating an account. The password
// here is the plaintext submitted by the client; it is hashed before it
// reaches storage.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields and reports the first violation.
func (r *Registration) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	if len(r.Username) < 3 || len(r.Username) > 50 {
		return &ValidationError{Field: "username", Message: "must be 3-50 characters long"}
	}
	if !usernameRe.MatchString(r.Username) {
		return &ValidationError{Field: "username", Message: "can only contain letters, numbers, and underscores"}
	}
	if !emailRe.MatchString(r.Email) {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if len(r.Password) < 6 || len(r.Password) > 100 {
		return &ValidationError{Field: "password", Message: "must be 6-100 characters long"}
	}
	return nil
}

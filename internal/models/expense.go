package models

import (
	"time"
)

// Category is the fixed set of expense categories.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryUtilities      Category = "utilities"
	CategoryHealth         Category = "health"
	CategoryEducation      Category = "education"
	CategoryOther          Category = "other"
)

var validCategories = map[Category]struct{}{
	CategoryFood:           {},
	CategoryTransportation: {},
	CategoryEntertainment:  {},
	CategoryShopping:       {},
	CategoryUtilities:      {},
	CategoryHealth:         {},
	CategoryEducation:      {},
	CategoryOther:          {},
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := validCategories[c]
	return ok
}

// Expense is a single spending record owned by exactly one user.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// ExpenseDraft is the client-supplied body for creating or fully replacing
// an expense. The owner is never part of the draft; it is set server-side
// from the resolved identity.
type ExpenseDraft struct {
	Amount      float64  `json:"amount"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`

	parsedDate time.Time
}

// Accepted layouts for the date field, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Validate checks the draft and parses its date. A draft that passes
// validation is complete: update semantics are full replace, so absent
// fields take their zero defaults rather than preserving old values.
func (d *ExpenseDraft) Validate() error {
	if d.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be greater than 0"}
	}
	if d.Category == "" {
		d.Category = CategoryOther
	}
	if !d.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category " + string(d.Category)}
	}
	if d.Date == "" {
		return &ValidationError{Field: "date", Message: "is required"}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, d.Date); err == nil {
			d.parsedDate = t
			return nil
		}
	}
	return &ValidationError{Field: "date", Message: "invalid date format, use ISO format (YYYY-MM-DDTHH:MM:SS)"}
}

// ParsedDate returns the date parsed by Validate.
func (d *ExpenseDraft) ParsedDate() time.Time {
	return d.parsedDate
}

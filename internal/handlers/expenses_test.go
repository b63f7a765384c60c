package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateExpense(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")
	mock.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO expenses`)).
		WithArgs(sqlmock.AnyArg(), "user-1", 12.5, "food", "lunch", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	payload, _ := json.Marshal(map[string]any{
		"amount":      12.5,
		"category":    "food",
		"description": "lunch",
		"date":        "2024-03-01T12:30:00",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodPost, "/expenses", bytes.NewReader(payload)))
	mustStatus(t, resp.Code, http.StatusCreated)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if id, _ := out["id"].(string); id == "" {
		t.Fatalf("expected assigned expense id, got %v", out)
	}
	if out["user_id"] != "user-1" {
		t.Fatalf("expense owner must be the caller, got %v", out["user_id"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")

	payload, _ := json.Marshal(map[string]any{
		"amount":   -3,
		"category": "food",
		"date":     "2024-03-01",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodPost, "/expenses", bytes.NewReader(payload)))
	mustStatus(t, resp.Code, http.StatusBadRequest)
}

func TestListExpenses(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")
	date := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
	mock.
		ExpectQuery(regexp.QuoteMeta(`FROM expenses WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "description", "date"}).
				AddRow("e-1", "user-1", 12.5, "food", "lunch", date).
				AddRow("e-2", "user-1", 30.0, "transportation", "", date),
		)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodGet, "/expenses", nil))
	mustStatus(t, resp.Code, http.StatusOK)

	var out []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(out))
	}
}

func TestGetExpenseForeignOwnerCollapsesToNotFound(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")
	// The record exists but belongs to another user; the scoped query
	// returns nothing and the caller sees a plain 404.
	mock.
		ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
		WithArgs("someone-elses-expense", "user-1").
		WillReturnError(sql.ErrNoRows)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodGet, "/expenses/someone-elses-expense", nil))
	mustStatus(t, resp.Code, http.StatusNotFound)

	if !strings.Contains(resp.Body.String(), "Expense not found") {
		t.Fatalf("expected generic not-found message, got %s", resp.Body.String())
	}
}

func TestUpdateExpense(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")
	mock.
		ExpectExec(regexp.QuoteMeta(`UPDATE expenses`)).
		WithArgs(99.0, "shopping", "new shoes", sqlmock.AnyArg(), "e-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	payload, _ := json.Marshal(map[string]any{
		"amount":      99.0,
		"category":    "shopping",
		"description": "new shoes",
		"date":        "2024-03-02T10:00:00",
	})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodPut, "/expenses/e-1", bytes.NewReader(payload)))
	mustStatus(t, resp.Code, http.StatusOK)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out["id"] != "e-1" || out["amount"] != 99.0 {
		t.Fatalf("unexpected response: %v", out)
	}
}

func TestDeleteExpense(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")
	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`)).
		WithArgs("e-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodDelete, "/expenses/e-1", nil))
	mustStatus(t, resp.Code, http.StatusOK)

	if !strings.Contains(resp.Body.String(), "Expense deleted successfully") {
		t.Fatalf("unexpected response: %s", resp.Body.String())
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")
	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`)).
		WithArgs("ghost", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodDelete, "/expenses/ghost", nil))
	mustStatus(t, resp.Code, http.StatusNotFound)
}

func TestProfile(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodGet, "/profile", nil))
	mustStatus(t, resp.Code, http.StatusOK)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out["username"] != "demo_user" || out["email"] != "demo_user@example.com" {
		t.Fatalf("unexpected profile: %v", out)
	}
}

func TestDeleteAccount(t *testing.T) {
	router, api, mock := setupRouter(t)

	expectUserLookup(mock, "demo_user", "user-1")
	mock.ExpectBegin()
	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM expenses WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(t, api, http.MethodDelete, "/users/me", nil))
	mustStatus(t, resp.Code, http.StatusOK)

	var out struct {
		Details struct {
			ExpensesDeleted int64 `json:"expenses_deleted"`
		} `json:"details"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.Details.ExpensesDeleted != 5 {
		t.Fatalf("expected 5 deleted expenses, got %d", out.Details.ExpensesDeleted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

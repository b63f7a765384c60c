package handlers

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"chillbills/internal/auth"
	"chillbills/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

const (
	testJWTSecret     = "chillbills_test_jwt_secret_key_1234567890"
	testAdminPassword = "test-admin-password"
)

func setupAPI(t *testing.T) (*API, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tokens := auth.NewTokenService(testJWTSecret, 30*time.Minute)
	api := New(store.NewUserStore(db), store.NewExpenseStore(db), tokens, testAdminPassword)
	return api, mock
}

func setupRouter(t *testing.T) (*gin.Engine, *API, sqlmock.Sqlmock) {
	t.Helper()
	api, mock := setupAPI(t)
	router := gin.New()
	api.RegisterRoutes(router)
	return router, api, mock
}

// expectUserLookup satisfies the auth middleware's liveness check for a
// token whose subject is username.
func expectUserLookup(mock sqlmock.Sqlmock, username, userID string) {
	now := time.Now()
	mock.
		ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs(username).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "email", "password", "created_at", "updated_at"}).
				AddRow(userID, username, username+"@example.com", "digest", now, now),
		)
}

func authedRequest(t *testing.T, api *API, method, path string, body io.Reader) *http.Request {
	t.Helper()
	token, err := api.tokens.Issue("demo_user")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func mustStatus(t *testing.T, actual, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func expectNoUserNamed(mock sqlmock.Sqlmock, username string) {
	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE username = $1`)).
		WithArgs(username).
		WillReturnError(sql.ErrNoRows)
}

func expectNoUserWithEmail(mock sqlmock.Sqlmock, email string) {
	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE email = $1`)).
		WithArgs(email).
		WillReturnError(sql.ErrNoRows)
}

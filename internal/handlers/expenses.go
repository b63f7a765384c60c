package handlers

import (
	"errors"
	"log"
	"net/http"

	"chillbills/internal/middleware"
	"chillbills/internal/models"
	"chillbills/internal/store"

	"github.com/gin-gonic/gin"
)

// CreateExpense creates a new expense owned by the caller.
func (a *API) CreateExpense(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	var draft models.ExpenseDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	expense, err := a.expenses.Create(user.ID, &draft)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		log.Printf("Error creating expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating expense"})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses returns every expense owned by the caller.
func (a *API) ListExpenses(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	expenses, err := a.expenses.ListByOwner(user.ID)
	if err != nil {
		log.Printf("Error listing expenses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense returns one of the caller's expenses.
func (a *API) GetExpense(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	expense, err := a.expenses.Get(user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		log.Printf("Error fetching expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching expense"})
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense fully replaces one of the caller's expenses with the
// submitted draft.
func (a *API) UpdateExpense(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	var draft models.ExpenseDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	expense, err := a.expenses.Update(user.ID, c.Param("id"), &draft)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.Is(err, store.ErrExpenseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		default:
			log.Printf("Error updating expense: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating expense"})
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense deletes one of the caller's expenses.
func (a *API) DeleteExpense(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	if err := a.expenses.Delete(user.ID, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		log.Printf("Error deleting expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting expense"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

package handlers

import (
	"log"
	"net/http"
	"time"

	"chillbills/internal/insights"
	"chillbills/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ExpenseInsights computes the caller's spending analytics. A user with no
// expenses gets all-zero aggregates and an empty insight list, not an error.
func (a *API) ExpenseInsights(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	expenses, err := a.expenses.ListByOwner(user.ID)
	if err != nil {
		log.Printf("Error fetching expenses for insights: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching expense insights"})
		return
	}

	c.JSON(http.StatusOK, insights.Compute(expenses, time.Now()))
}

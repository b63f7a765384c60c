package handlers

import (
	"log"
	"net/http"

	"chillbills/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Profile returns the caller's username and email.
func (a *API) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}

// DeleteAccount deletes the caller's account and every expense they own.
// Expenses go first inside one transaction, so a failure never leaves a
// user without their data.
func (a *API) DeleteAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.CredentialsError})
		return
	}

	deletedExpenses, err := a.users.DeleteWithExpenses(user.ID)
	if err != nil {
		log.Printf("Error deleting account for user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting user account"})
		return
	}

	log.Printf("User deleted: %s (expenses removed: %d)", user.Username, deletedExpenses)
	c.JSON(http.StatusOK, gin.H{
		"message": "User account and all associated data have been deleted successfully",
		"details": gin.H{
			"username":         user.Username,
			"email":            user.Email,
			"expenses_deleted": deletedExpenses,
		},
	})
}

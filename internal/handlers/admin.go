package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClearUsers wipes every user and expense. It requires the configured admin
// password plus a literal confirmation string; when no admin password is
// configured the endpoint is disabled entirely.
func (a *API) ClearUsers(c *gin.Context) {
	if a.adminClearPassword == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin API is disabled"})
		return
	}

	var req struct {
		Confirmation  string `json:"confirmation"`
		AdminPassword string `json:"admin_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.AdminPassword != a.adminClearPassword {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid admin password"})
		return
	}

	if !strings.EqualFold(strings.TrimSpace(req.Confirmation), "confirm") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation not provided"})
		return
	}

	deletedUsers, deletedExpenses, err := a.users.ClearAll()
	if err != nil {
		log.Printf("Error clearing users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing user data"})
		return
	}

	log.Printf("Admin clear: removed %d users and %d expenses", deletedUsers, deletedExpenses)
	c.JSON(http.StatusOK, gin.H{
		"message":             "All user data has been cleared successfully",
		"collections_cleared": []string{"users", "expenses"},
	})
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"chillbills/internal/auth"
	"chillbills/internal/models"
	"chillbills/internal/store"

	"github.com/gin-gonic/gin"
)

// Register handles user registration
func (a *API) Register(c *gin.Context) {
	var reg models.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := reg.Validate(); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	hashedPassword, err := auth.HashPassword(reg.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	user, err := a.users.Create(reg.Username, reg.Email, hashedPassword)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		case errors.Is(err, store.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		default:
			log.Printf("Error creating user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		}
		return
	}

	log.Printf("User registered: %s", user.Username)
	c.JSON(http.StatusCreated, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login exchanges form-encoded credentials for an access token. Missing
// users and wrong passwords produce the same response so accounts cannot
// be enumerated.
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	user, err := a.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
			return
		}
		log.Printf("Error querying user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := a.tokens.Issue(user.Username)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"username":     user.Username,
		"email":        user.Email,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gurdeepkumar/urlshorty/internal/models"
	"github.com/gurdeepkumar/urlshorty/internal/services"
	"github.com/gurdeepkumar/urlshorty/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type DeleteUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// Input rules are checked before any database access
	if len(req.Username) < 6 || !utils.IsAlphabetic(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Username must be at least 6 alphabetic characters"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Password must be at least 8 characters"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to hash password"})
		return
	}

	newUser := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
	}

	// The unique constraint decides duplicates, so two concurrent
	// registrations cannot both slip past a read-then-insert check.
	if err := h.db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": newUser.ID, "username": newUser.Username})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// Unknown username and wrong password return the same error
	var user models.User
	result := h.db.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		}
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}

	refreshToken, err := h.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}

	if err := h.sessions.Save(user.ID, refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// A logged-out token may still carry a valid signature, so revocation is
	// checked against the store before the token is renewed.
	if !h.sessions.IsValid(req.RefreshToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		return
	}

	accessToken, err := h.tokens.RenewAccessToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrExpiredToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Refresh token has expired"})
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if err := h.sessions.Delete(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// DeleteUser removes an account after re-authenticating with username and
// password; the bearer token alone is not enough to destroy an account.
func (h *Handler) DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var user models.User
	result := h.db.Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		}
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	tx := h.db.Begin()

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.URL{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete URLs"})
		return
	}

	if err := h.sessions.DeleteForUser(tx, user.ID); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete sessions"})
		return
	}

	if err := tx.Delete(&models.User{}, user.ID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete user"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gurdeepkumar/urlshorty/internal/models"
	"github.com/gurdeepkumar/urlshorty/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShortenRequest struct {
	OriginalURL string `json:"original_url" binding:"required"`
	ShortCode   string `json:"short_code" binding:"required"`
}

type UpdateRequest struct {
	ShortCode  string `json:"short_code" binding:"required"`
	UpdatedURL string `json:"updated_url" binding:"required"`
}

type DeleteRequest struct {
	ShortCode string `json:"short_code" binding:"required"`
}

func (h *Handler) ListURLs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	urls := []models.URL{}
	if err := h.db.Where("user_id = ?", user.ID).Order("created_at desc").Find(&urls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		return
	}

	c.JSON(http.StatusOK, urls)
}

func (h *Handler) ShortenURL(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if !utils.IsAlphabetic(req.ShortCode) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Only use alphabtes for short code"})
		return
	}

	newURL := models.URL{
		UserID:      user.ID,
		ShortCode:   req.ShortCode,
		OriginalURL: utils.NormalizeURL(req.OriginalURL),
	}

	// Uniqueness is scoped per user and decided by the composite index
	if err := h.db.Create(&newURL).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Short code is already used"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create URL"})
		return
	}

	c.JSON(http.StatusOK, newURL)
}

func (h *Handler) GetURL(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	shortCode := c.Param("short_code")

	// Scoped to the caller: another user's code looks identical to a
	// nonexistent one.
	var url models.URL
	if err := h.db.Where("user_id = ? AND short_code = ?", user.ID, shortCode).First(&url).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "URL not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, url)
}

func (h *Handler) UpdateURL(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var url models.URL
	if err := h.db.Where("user_id = ? AND short_code = ?", user.ID, req.ShortCode).First(&url).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "URL not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		}
		return
	}

	url.OriginalURL = req.UpdatedURL
	if err := h.db.Save(&url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "URL updated successfully", "data": url})
}

func (h *Handler) DeleteURL(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var url models.URL
	if err := h.db.Where("user_id = ? AND short_code = ?", user.ID, req.ShortCode).First(&url).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "URL not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error"})
		}
		return
	}

	if err := h.db.Delete(&url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "URL deleted successfully"})
}

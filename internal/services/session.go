package services

import (
	"fmt"

	"github.com/gurdeepkumar/urlshorty/internal/models"

	"gorm.io/gorm"
)

// SessionService persists issued refresh tokens. A refresh token is usable
// only while its row exists, so deleting a row revokes the session. A user
// may hold several rows at once (one per login).
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

func (s *SessionService) Save(userID uint, token string) error {
	rt := models.RefreshToken{UserID: userID, Token: token}
	if err := s.db.Create(&rt).Error; err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (s *SessionService) IsValid(token string) bool {
	var rt models.RefreshToken
	return s.db.Where("token = ?", token).First(&rt).Error == nil
}

// Delete revokes a refresh token. Deleting an unknown token is a no-op.
func (s *SessionService) Delete(token string) error {
	if err := s.db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// DeleteForUser removes every refresh token owned by a user. It runs on the
// given handle so callers can include it in a larger transaction.
func (s *SessionService) DeleteForUser(tx *gorm.DB, userID uint) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete user refresh tokens: %w", err)
	}
	return nil
}

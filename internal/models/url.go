package models

import (
	"time"
)

// URL maps a short code to its original URL. Short codes are unique per
// owning user, so two users may claim the same code independently.
type URL struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_urls_user_short_code" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	ShortCode   string    `gorm:"not null;size:80;uniqueIndex:idx_urls_user_short_code" json:"short_code"`
	OriginalURL string    `gorm:"not null;type:text" json:"original_url"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (URL) TableName() string {
	return "urls"
}

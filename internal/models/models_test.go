package models

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&User{}, &URL{}, &RefreshToken{}))
	return db
}

func TestModels(t *testing.T) {
	t.Run("Table Names", func(t *testing.T) {
		assert.Equal(t, "urls", URL{}.TableName())
		assert.Equal(t, "refresh_tokens", RefreshToken{}.TableName())
	})

	t.Run("Username Unique", func(t *testing.T) {
		db := setupTestDB(t)
		assert.NoError(t, db.Create(&User{Username: "alice", PasswordHash: "x"}).Error)

		err := db.Create(&User{Username: "alice", PasswordHash: "y"}).Error
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	})

	t.Run("Short Code Unique Per User", func(t *testing.T) {
		db := setupTestDB(t)
		alice := User{Username: "alice", PasswordHash: "x"}
		bob := User{Username: "bob", PasswordHash: "x"}
		db.Create(&alice)
		db.Create(&bob)

		assert.NoError(t, db.Create(&URL{UserID: alice.ID, ShortCode: "docs", OriginalURL: "https://a.example"}).Error)

		// Same code under the same user collides
		err := db.Create(&URL{UserID: alice.ID, ShortCode: "docs", OriginalURL: "https://b.example"}).Error
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

		// Another user may claim the same code
		assert.NoError(t, db.Create(&URL{UserID: bob.ID, ShortCode: "docs", OriginalURL: "https://c.example"}).Error)
	})
}

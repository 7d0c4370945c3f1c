package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gurdeepkumar/urlshorty/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestShortenURL(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	access, _ := registerAndLogin(t, r, "aliceuser", "password1")
	otherAccess, _ := registerAndLogin(t, r, "bobbyuser", "password2")

	t.Run("Requires Auth", func(t *testing.T) {
		w := doJSON(r, "POST", "/url/shorten/", map[string]string{
			"original_url": "example.com",
			"short_code":   "docs",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success Normalizes URL", func(t *testing.T) {
		w := doJSON(r, "POST", "/url/shorten/", map[string]string{
			"original_url": "example.com",
			"short_code":   "docs",
		}, access)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.URL
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "https://example.com", resp.OriginalURL)
		assert.Equal(t, "docs", resp.ShortCode)
	})

	t.Run("Scheme Preserved", func(t *testing.T) {
		w := doJSON(r, "POST", "/url/shorten/", map[string]string{
			"original_url": "http://example.com",
			"short_code":   "plain",
		}, access)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.URL
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "http://example.com", resp.OriginalURL)
	})

	t.Run("Non-Alphabetic Code", func(t *testing.T) {
		w := doJSON(r, "POST", "/url/shorten/", map[string]string{
			"original_url": "example.com",
			"short_code":   "abc123",
		}, access)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Only use alphabtes for short code")
	})

	t.Run("Duplicate Code Same User", func(t *testing.T) {
		w := doJSON(r, "POST", "/url/shorten/", map[string]string{
			"original_url": "example.org",
			"short_code":   "docs",
		}, access)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Short code is already used")
	})

	t.Run("Same Code Different User", func(t *testing.T) {
		w := doJSON(r, "POST", "/url/shorten/", map[string]string{
			"original_url": "example.org",
			"short_code":   "docs",
		}, otherAccess)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.URL{}).Where("short_code = ?", "docs").Count(&count)
		assert.Equal(t, int64(2), count)
	})
}

func TestListURLs(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	access, _ := registerAndLogin(t, r, "aliceuser", "password1")
	otherAccess, _ := registerAndLogin(t, r, "bobbyuser", "password2")

	doJSON(r, "POST", "/url/shorten/", map[string]string{
		"original_url": "example.com",
		"short_code":   "first",
	}, access)
	doJSON(r, "POST", "/url/shorten/", map[string]string{
		"original_url": "example.org",
		"short_code":   "second",
	}, access)
	doJSON(r, "POST", "/url/shorten/", map[string]string{
		"original_url": "example.net",
		"short_code":   "other",
	}, otherAccess)

	t.Run("Only Own URLs", func(t *testing.T) {
		w := doJSON(r, "GET", "/url/list/", nil, access)
		assert.Equal(t, http.StatusOK, w.Code)

		var urls []models.URL
		json.Unmarshal(w.Body.Bytes(), &urls)
		assert.Len(t, urls, 2)
		for _, u := range urls {
			assert.NotEqual(t, "other", u.ShortCode)
		}
	})

	t.Run("Empty List", func(t *testing.T) {
		freshAccess, _ := registerAndLogin(t, r, "caroluser", "password3")

		w := doJSON(r, "GET", "/url/list/", nil, freshAccess)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("Requires Auth", func(t *testing.T) {
		w := doJSON(r, "GET", "/url/list/", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetURL(t *testing.T) {
	h, _ := setupTestHandler()
	r := setupTestRouter(h)

	access, _ := registerAndLogin(t, r, "aliceuser", "password1")
	otherAccess, _ := registerAndLogin(t, r, "bobbyuser", "password2")

	doJSON(r, "POST", "/url/shorten/", map[string]string{
		"original_url": "example.com",
		"short_code":   "docs",
	}, access)

	t.Run("Success", func(t *testing.T) {
		w := doJSON(r, "GET", "/url/docs", nil, access)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.URL
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "https://example.com", resp.OriginalURL)
	})

	t.Run("Another Users Code", func(t *testing.T) {
		// No data leaks about codes owned by someone else
		w := doJSON(r, "GET", "/url/docs", nil, otherAccess)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "URL not found")
	})

	t.Run("Nonexistent Code", func(t *testing.T) {
		w := doJSON(r, "GET", "/url/nothing", nil, access)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateURL(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	access, _ := registerAndLogin(t, r, "aliceuser", "password1")
	otherAccess, _ := registerAndLogin(t, r, "bobbyuser", "password2")

	doJSON(r, "POST", "/url/shorten/", map[string]string{
		"original_url": "example.com",
		"short_code":   "docs",
	}, access)

	t.Run("Success", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/url/", map[string]string{
			"short_code":  "docs",
			"updated_url": "https://example.org/new",
		}, access)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "URL updated successfully")

		var url models.URL
		db.Where("short_code = ?", "docs").First(&url)
		assert.Equal(t, "https://example.org/new", url.OriginalURL)
	})

	t.Run("Another Users Code", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/url/", map[string]string{
			"short_code":  "docs",
			"updated_url": "https://evil.example",
		}, otherAccess)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := doJSON(r, "PATCH", "/url/", map[string]string{
			"short_code": "docs",
		}, access)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteURL(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	access, _ := registerAndLogin(t, r, "aliceuser", "password1")
	otherAccess, _ := registerAndLogin(t, r, "bobbyuser", "password2")

	doJSON(r, "POST", "/url/shorten/", map[string]string{
		"original_url": "example.com",
		"short_code":   "docs",
	}, access)

	t.Run("Another Users Code", func(t *testing.T) {
		w := doJSON(r, "DELETE", "/url/", map[string]string{
			"short_code": "docs",
		}, otherAccess)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success", func(t *testing.T) {
		w := doJSON(r, "DELETE", "/url/", map[string]string{
			"short_code": "docs",
		}, access)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "URL deleted successfully")

		var count int64
		db.Model(&models.URL{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Already Deleted", func(t *testing.T) {
		w := doJSON(r, "DELETE", "/url/", map[string]string{
			"short_code": "docs",
		}, access)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

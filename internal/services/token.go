package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/gurdeepkumar/urlshorty/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenService signs and verifies access and refresh tokens. The two token
// kinds use separate secrets and expiry windows but share the signing
// algorithm.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	method        jwt.SigningMethod
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg config.Config) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm: %s", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", cfg.Algorithm)
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		method:        method,
		accessTTL:     time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		refreshTTL:    time.Duration(cfg.RefreshTokenExpireDays) * 24 * time.Hour,
	}, nil
}

func (s *TokenService) IssueAccessToken(username string) (string, error) {
	return s.sign(username, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(username string) (string, error) {
	return s.sign(username, s.refreshSecret, s.refreshTTL)
}

// Subject verifies an access token and returns its subject claim. Every
// verification failure (malformed, expired, wrong signature) collapses into
// ErrInvalidToken; callers only need to know the token is unusable.
func (s *TokenService) Subject(tokenString string) (string, error) {
	subject, err := s.parseSubject(tokenString, s.accessSecret)
	if err != nil {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// RenewAccessToken verifies a refresh token and mints a new access token for
// its subject. It distinguishes an expired token (ErrExpiredToken) from any
// other failure (ErrInvalidToken). Revocation is enforced by the caller via
// the session store; a deleted but still-signed token passes here.
func (s *TokenService) RenewAccessToken(refreshToken string) (string, error) {
	subject, err := s.parseSubject(refreshToken, s.refreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	return s.IssueAccessToken(subject)
}

func (s *TokenService) sign(subject string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(s.method, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().UTC().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func (s *TokenService) parseSubject(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

package handlers

import (
	"log/slog"

	"github.com/gurdeepkumar/urlshorty/internal/config"
	"github.com/gurdeepkumar/urlshorty/internal/services"

	"gorm.io/gorm"
)

type Handler struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *gorm.DB
	tokens   *services.TokenService
	sessions *services.SessionService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	tokens *services.TokenService,
	sessions *services.SessionService,
) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		tokens:   tokens,
		sessions: sessions,
	}
}

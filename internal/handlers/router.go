package handlers

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.RequestLogger())

	r.GET("/health/", h.HealthCheck)

	usr := r.Group("/usr")
	{
		usr.POST("/register", h.Register)
		usr.POST("/login", h.Login)
		usr.POST("/refresh", h.Refresh)
		usr.POST("/logout", h.Logout)
		usr.DELETE("/delete", h.DeleteUser)
		usr.GET("/me", h.AuthRequired(), h.Me)
	}

	url := r.Group("/url")
	url.Use(h.AuthRequired())
	{
		url.GET("/list/", h.ListURLs)
		url.POST("/shorten/", h.ShortenURL)
		url.GET("/:short_code", h.GetURL)
		url.PATCH("/", h.UpdateURL)
		url.DELETE("/", h.DeleteURL)
	}

	return r
}

package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/InSantoshMahto/login-system/internal/http/handlers"
	"github.com/InSantoshMahto/login-system/internal/http/middleware"
)

func BuildRouter(ph *handlers.PasswordHandlers, authMW *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	pw := r.Group("/auth/v1/password")
	pw.POST("/forget", ph.Forget)
	pw.POST("/verify", ph.Verify)
	pw.POST("/update", ph.Update)

	authed := pw.Group("").Use(authMW.WithSession())
	authed.PUT("/change", ph.Change)

	return r
}

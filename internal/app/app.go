package app

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/InSantoshMahto/login-system/internal/config"
	httpx "github.com/InSantoshMahto/login-system/internal/http"
	"github.com/InSantoshMahto/login-system/internal/http/handlers"
	"github.com/InSantoshMahto/login-system/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "login-system").Logger()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	passwordH := handlers.NewPasswordHandlers(c.RecoverySvc, c.Policy)
	authMW := middleware.NewAuthMW(c.TokenSvc, c.UserRepo)

	r := httpx.BuildRouter(passwordH, authMW)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, r)
}

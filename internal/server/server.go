// Package server exposes the repository chat over HTTP: clone and index a
// repository with /init-chat, then question it with /start-chat.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aditya22034/CodeWhisper/internal/config"
)

// New builds the echo instance with middleware and all routes registered.
func New(cfg *config.Config, chat *ChatHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"detail": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "API For Chatting With Any Public Github Repo!")
	})
	registerMemory(e, cfg.Workspace.Dir)
	chat.Register(e)

	return e
}

// Run builds the server and listens on the configured address.
func Run(cfg *config.Config, chat *ChatHandler) error {
	e := New(cfg, chat)
	return e.Start(cfg.Server.Address)
}

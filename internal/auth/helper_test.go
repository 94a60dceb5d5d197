package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	g := e.Group("")
	g.Use(Middleware)
	g.POST("/refresh", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

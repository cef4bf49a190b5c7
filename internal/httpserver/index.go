package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func Index(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Hello Hello World World</h1>")
}

func AnotherRoute(c echo.Context) error {
	return c.String(http.StatusOK, "This is another route, not the same as previous")
}

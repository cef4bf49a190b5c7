package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, transport.ErrorResponse{Error: msg})
}

// internalError logs the cause and answers with a body that carries no
// internals.
func internalError(c echo.Context, l *slog.Logger, op string, err error) error {
	l.Error(op, "status", http.StatusInternalServerError, "reason", "unexpected error", "error", err)
	return errorJSON(c, http.StatusInternalServerError, "internal server error")
}

func productNotFound(c echo.Context, l *slog.Logger, op, id string) error {
	l.Warn(op, "status", http.StatusNotFound, "reason", "product not found", "id", id)
	return c.JSON(http.StatusNotFound, transport.MessageResponse{
		Message: fmt.Sprintf("Product with id %s doesn't exist", id),
	})
}

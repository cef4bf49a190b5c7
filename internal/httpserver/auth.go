package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/feb_ecommerce/internal/logging"
	authmw "github.com/Skotchmaster/feb_ecommerce/internal/middleware/auth"
	"github.com/Skotchmaster/feb_ecommerce/internal/service"
	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_failed", "status", 400, "reason", "missing fields")
			return errorJSON(c, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, service.ErrConflict):
			return errorJSON(c, http.StatusConflict, "Email already exists")
		default:
			return internalError(c, l, "register_failed", err)
		}
	}

	l.Info("register_successful", "user_id", user.ID)
	return c.JSON(http.StatusCreated, transport.NewUserView(*user, nil))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return errorJSON(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return internalError(c, l, "login_failed", err)
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, transport.LoginResponse{
		Email:   res.Email,
		Token:   res.Token,
		IsAdmin: res.IsAdmin,
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	identity, ok := authmw.Identity(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "missing or invalid token")
	}

	user, products, err := h.Svc.Me(ctx, identity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("me_failed", "status", 404, "reason", "user not found", "identity", identity)
			return c.JSON(http.StatusNotFound, transport.MessageResponse{
				Message: fmt.Sprintf("User with id %s doesn't exist", identity),
			})
		case errors.Is(err, service.ErrUnauthorized):
			return errorJSON(c, http.StatusUnauthorized, "missing or invalid token")
		default:
			return internalError(c, l, "me_failed", err)
		}
	}

	return c.JSON(http.StatusOK, transport.NewUserView(*user, products))
}

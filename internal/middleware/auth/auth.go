package authmw

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/feb_ecommerce/internal/logging"
	"github.com/Skotchmaster/feb_ecommerce/internal/tokens"
	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

const ContextKey = "user"

type SimpleAuth struct {
	JWTSecret   []byte
	RequireAuth echo.MiddlewareFunc
}

// NewSimpleAuth builds a bearer-token gate. Requests without a valid,
// unexpired HS256 token are answered with 401 before the handler runs.
func NewSimpleAuth(secret []byte) *SimpleAuth {
	m := &SimpleAuth{JWTSecret: secret}
	m.RequireAuth = echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(_ echo.Context, auth string) (interface{}, error) {
			return tokens.AccessClaimsFromToken(auth, m.JWTSecret)
		},
		ErrorHandler: unauthorized,
	})
	return m
}

func unauthorized(c echo.Context, err error) error {
	l := logging.FromContext(c.Request().Context()).With("middleware", "auth")

	msg := "missing or invalid token"
	if errors.Is(err, jwt.ErrTokenExpired) {
		msg = "token has expired"
	}
	l.Warn("auth_failed", "status", http.StatusUnauthorized, "reason", msg, "error", err)
	return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: msg})
}

// Identity returns the token subject set by RequireAuth.
func Identity(c echo.Context) (string, bool) {
	claims, ok := c.Get(ContextKey).(*tokens.AccessClaims)
	if !ok || claims == nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

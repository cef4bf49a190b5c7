package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/feb_ecommerce/internal/db"
	authmw "github.com/Skotchmaster/feb_ecommerce/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	JWTSecret      []byte
	DB             *gorm.DB
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	e.GET("/", Index)
	e.GET("/another_route", AnotherRoute)

	authMw := authmw.NewSimpleAuth(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/me", d.AuthHandler.Me, authMw.RequireAuth)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	private := products.Group("", authMw.RequireAuth)
	private.POST("", d.ProductHandler.CreateProduct)
	private.PUT("/:id", d.ProductHandler.UpdateProduct)
	private.PATCH("/:id", d.ProductHandler.UpdateProduct)
	private.DELETE("/:id", d.ProductHandler.DeleteProduct)
}

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/feb_ecommerce/internal/logging"
	authmw "github.com/Skotchmaster/feb_ecommerce/internal/middleware/auth"
	"github.com/Skotchmaster/feb_ecommerce/internal/service"
	"github.com/Skotchmaster/feb_ecommerce/internal/transport"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

// productID parses the path id. Anything that is not a positive integer
// cannot name a product.
func productID(c echo.Context) (uint, string, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, raw, false
	}
	return uint(id), raw, true
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		return internalError(c, l, "get_products_failed", err)
	}

	return c.JSON(http.StatusOK, transport.NewProductViews(items))
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, raw, ok := productID(c)
	if !ok {
		return productNotFound(c, l, "get_product_failed", raw)
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return productNotFound(c, l, "get_product_failed", raw)
		}
		return internalError(c, l, "get_product_failed", err)
	}

	return c.JSON(http.StatusOK, transport.NewProductView(*prod))
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	identity, ok := authmw.Identity(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "missing or invalid token")
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, identity, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_product_failed", "status", 400, "reason", "name is required")
			return errorJSON(c, http.StatusBadRequest, "name is required")
		case errors.Is(err, service.ErrUnauthorized):
			return errorJSON(c, http.StatusUnauthorized, "missing or invalid token")
		default:
			return internalError(c, l, "create_product_failed", err)
		}
	}

	l.Info("create_product_successful", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, transport.NewProductView(*prod))
}

// UpdateProduct serves both PUT and PATCH.
func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	identity, ok := authmw.Identity(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "missing or invalid token")
	}

	id, raw, ok := productID(c)
	if !ok {
		return productNotFound(c, l, "update_product_failed", raw)
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, identity, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return productNotFound(c, l, "update_product_failed", raw)
		case errors.Is(err, service.ErrForbidden):
			l.Warn("update_product_failed", "status", 403, "reason", "not the owner", "identity", identity)
			return errorJSON(c, http.StatusForbidden, "Not authorised to edit the product")
		default:
			return internalError(c, l, "update_product_failed", err)
		}
	}

	return c.JSON(http.StatusOK, transport.NewProductView(*prod))
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	identity, ok := authmw.Identity(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "missing or invalid token")
	}

	// a non-integer id still has to pass the admin check first
	id, raw, _ := productID(c)

	prod, err := h.Svc.DeleteProduct(ctx, identity, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("delete_product_failed", "status", 403, "reason", "not an admin", "identity", identity)
			return errorJSON(c, http.StatusForbidden, "User other than admin not authorised to delete")
		case errors.Is(err, service.ErrNotFound):
			return productNotFound(c, l, "delete_product_failed", raw)
		default:
			return internalError(c, l, "delete_product_failed", err)
		}
	}

	l.Info("delete_product_successful", "product_id", prod.ID)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Product %s deleted successfully", prod.Name),
	})
}

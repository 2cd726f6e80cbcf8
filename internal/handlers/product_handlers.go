package handlers

import (
	"net/http"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/services"

	"github.com/labstack/echo/v4"
)

type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return common.SendValidationError(c, map[string]string{"body": "Invalid request body"})
	}
	if err := c.Validate(&product); err != nil {
		return common.SendKindError(c, err)
	}
	if err := h.productService.Create(c.Request().Context(), &product); err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "product_id")
	if !ok {
		return err
	}
	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// ListProducts handles GET /products?limit=&offset=
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit, offset := pagination(c)
	products, err := h.productService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "product_id")
	if !ok {
		return err
	}
	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return common.SendKindError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

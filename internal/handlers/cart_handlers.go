package handlers

import (
	"net/http"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/services"

	"github.com/labstack/echo/v4"
)

type CartHandlers struct {
	cartService services.CartService
}

func NewCartHandlers(cartService services.CartService) *CartHandlers {
	return &CartHandlers{cartService: cartService}
}

// SaveCart handles POST /carts
func (h *CartHandlers) SaveCart(c echo.Context) error {
	var req models.SaveShoppingCartRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, map[string]string{"body": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return common.SendKindError(c, err)
	}
	cart, err := h.cartService.Save(c.Request().Context(), &req)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusCreated, cart)
}

// GetCart handles GET /carts/:id
func (h *CartHandlers) GetCart(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "cart_id")
	if !ok {
		return err
	}
	cart, err := h.cartService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

// ListUserCarts handles GET /users/:id/carts
func (h *CartHandlers) ListUserCarts(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "user_id")
	if !ok {
		return err
	}
	carts, err := h.cartService.ListByUser(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"carts": carts})
}

// DeleteCart handles DELETE /carts/:id
func (h *CartHandlers) DeleteCart(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "cart_id")
	if !ok {
		return err
	}
	if err := h.cartService.Delete(c.Request().Context(), id); err != nil {
		return common.SendKindError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/services"

	"github.com/labstack/echo/v4"
)

type ShippingHandlers struct {
	shippingService services.ShippingService
}

func NewShippingHandlers(shippingService services.ShippingService) *ShippingHandlers {
	return &ShippingHandlers{shippingService: shippingService}
}

type updateShippingStateRequest struct {
	ShippingState models.ShippingState `json:"shipping_state" validate:"required"`
}

// CreateShipping handles POST /shippings
func (h *ShippingHandlers) CreateShipping(c echo.Context) error {
	var req models.CreateShippingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, map[string]string{"body": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return common.SendKindError(c, err)
	}
	shipping, err := h.shippingService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusCreated, shipping)
}

// GetShipping handles GET /shippings/:id
func (h *ShippingHandlers) GetShipping(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "shipping_id")
	if !ok {
		return err
	}
	shipping, err := h.shippingService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, shipping)
}

// UpdateShippingState handles PATCH /shippings/:id/state
func (h *ShippingHandlers) UpdateShippingState(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "shipping_id")
	if !ok {
		return err
	}
	var req updateShippingStateRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, map[string]string{"body": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return common.SendKindError(c, err)
	}
	shipping, err := h.shippingService.UpdateState(c.Request().Context(), id, req.ShippingState)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, shipping)
}

// DeleteShipping handles DELETE /shippings/:id
func (h *ShippingHandlers) DeleteShipping(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "shipping_id")
	if !ok {
		return err
	}
	if err := h.shippingService.Delete(c.Request().Context(), id); err != nil {
		return common.SendKindError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOrderShippings handles GET /orders/:id/shippings
func (h *ShippingHandlers) ListOrderShippings(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "order_id")
	if !ok {
		return err
	}
	shippings, err := h.shippingService.ListByOrder(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"shippings": shippings})
}

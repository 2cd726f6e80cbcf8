package handlers

import (
	"net/http"

	"ishop/internal/common"
	"ishop/internal/models"
	"ishop/internal/services"

	"github.com/labstack/echo/v4"
)

type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

// CreateSupplier handles POST /suppliers
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return common.SendValidationError(c, map[string]string{"body": "Invalid request body"})
	}
	if err := c.Validate(&supplier); err != nil {
		return common.SendKindError(c, err)
	}
	if err := h.supplierService.Create(c.Request().Context(), &supplier); err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier handles GET /suppliers/:id
func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "supplier_id")
	if !ok {
		return err
	}
	supplier, err := h.supplierService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles PUT /suppliers/:id
func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "supplier_id")
	if !ok {
		return err
	}
	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return common.SendValidationError(c, map[string]string{"body": "Invalid request body"})
	}
	supplier.ID = id
	if err := c.Validate(&supplier); err != nil {
		return common.SendKindError(c, err)
	}
	if err := h.supplierService.Update(c.Request().Context(), &supplier); err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /suppliers/:id
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	id, ok, err := pathUUID(c, "id", "supplier_id")
	if !ok {
		return err
	}
	if err := h.supplierService.Delete(c.Request().Context(), id); err != nil {
		return common.SendKindError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSuppliers handles GET /suppliers?limit=&offset=
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	limit, offset := pagination(c)
	suppliers, err := h.supplierService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendKindError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"limit":     limit,
		"offset":    offset,
	})
}

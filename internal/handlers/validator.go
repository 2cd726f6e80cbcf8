package handlers

import (
	"strconv"

	"ishop/internal/common"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CustomValidator plugs go-playground/validator into echo's c.Validate.
// Failures come back as InvalidInput errors with per-field details.
type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return common.ValidateStruct(cv.validator, "request", i)
}

// pagination reads limit and offset query parameters, falling back to the
// defaults for missing or malformed values.
func pagination(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}

// pathUUID parses a uuid path parameter and writes a 400 response when it is
// malformed. ok is false when the response has been written.
func pathUUID(c echo.Context, name, field string) (uuid.UUID, bool, error) {
	parsed, verr := common.ValidateUUID(c.Param(name), field)
	if verr != nil {
		return parsed, false, common.SendValidationError(c, map[string]string{field: verr.Error()})
	}
	return parsed, true, nil
}

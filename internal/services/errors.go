package services

import (
	"errors"
	"fmt"

	"ishop/internal/common"
	"ishop/internal/repositories"
)

// catalogError converts a repository error into a *common.Error.
func catalogError(op, entity string, id any, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return common.NotFound(op, entity, id)
	case errors.Is(err, repositories.ErrDuplicate):
		return common.E(common.KindConflict, op, fmt.Sprintf("%s already exists", entity), err)
	case errors.Is(err, repositories.ErrForeignKey):
		return common.E(common.KindInvalidInput, op, fmt.Sprintf("%s references a record that does not exist", entity), err)
	default:
		return common.E(common.KindPersistenceFailure, op, fmt.Sprintf("failed to access %s", entity), err)
	}
}

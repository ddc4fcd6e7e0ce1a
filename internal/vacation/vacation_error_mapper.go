package vacation

import (
	"errors"

	vacationerrors "resto-ops/internal/vacation/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vacationerrors.ErrVacationNotFound
	}
	return err
}

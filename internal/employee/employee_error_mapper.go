package employee

import (
	"errors"
	"strings"

	employeeerrors "resto-ops/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// mapRepositoryError turns storage errors into the package's AppErrors.
// Unique violations are matched by constraint name first (pgconn), with a
// message fallback for drivers that flatten the error.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employeeerrors.ErrEmployeeNotFound
	case errors.Is(err, errStaleVersion):
		return employeeerrors.ErrVersionConflict
	}

	constraint := ""
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		constraint = pgErr.ConstraintName
	} else if msg := strings.ToLower(err.Error()); strings.Contains(msg, "duplicate key value") {
		switch {
		case strings.Contains(msg, "uq_employee_number"):
			constraint = "uq_employee_number"
		case strings.Contains(msg, "uq_employee_email"):
			constraint = "uq_employee_email"
		}
	}

	switch constraint {
	case "uq_employee_number":
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	case "uq_employee_email":
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}

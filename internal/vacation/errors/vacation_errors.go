package vacationerrors

import (
	"net/http"

	"resto-ops/internal/shared/apperror"
)

var (
	ErrVacationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vacation request not found",
		http.StatusNotFound,
	)
	ErrInvalidVacationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid vacation ID",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Vacation end date must not be before the start date",
		http.StatusBadRequest,
	)
	ErrOverlappingPeriod = apperror.New(
		apperror.CodeConflict,
		"Employee already has a vacation request on this period",
		http.StatusConflict,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Vacation request has already been decided",
		http.StatusUnprocessableEntity,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A reason is required to reject a vacation request",
		http.StatusBadRequest,
	)
)

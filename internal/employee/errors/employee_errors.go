package employeeerrors

import (
	"net/http"

	"resto-ops/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists in this restaurant",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown employee role",
		http.StatusBadRequest,
	)
	ErrInvalidSkillLevel = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown skill level",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrArchiveReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"An archive reason is required",
		http.StatusBadRequest,
	)
	ErrNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is not in the active roster",
		http.StatusConflict,
	)
	ErrNotArchived = apperror.New(
		apperror.CodeInvalidState,
		"Employee is not archived",
		http.StatusConflict,
	)
	ErrNotTrashed = apperror.New(
		apperror.CodeInvalidState,
		"Employee is not in the trash",
		http.StatusConflict,
	)
	ErrVersionConflict = apperror.New(
		apperror.CodeConflict,
		"Employee was modified by someone else, reload and retry",
		http.StatusConflict,
	)
)

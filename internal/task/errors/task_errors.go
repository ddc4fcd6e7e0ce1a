package taskerrors

import (
	"net/http"

	"resto-ops/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task ID",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task status",
		http.StatusBadRequest,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task priority",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid due date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrUnknownAssignee = apperror.New(
		apperror.CodeInvalidState,
		"Assignee is not an active employee",
		http.StatusUnprocessableEntity,
	)
)

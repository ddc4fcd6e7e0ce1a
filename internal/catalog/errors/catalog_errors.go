package catalogerrors

import (
	"net/http"

	"resto-ops/internal/shared/apperror"
)

var (
	ErrInvalidRestaurantID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid restaurant ID",
		http.StatusBadRequest,
	)
	ErrDuplicateCatalogName = apperror.New(
		apperror.CodeConflict,
		"Catalog names must be unique",
		http.StatusConflict,
	)
	ErrInvalidValidity = apperror.New(
		apperror.CodeInvalidInput,
		"Validity months cannot be negative",
		http.StatusBadRequest,
	)
)

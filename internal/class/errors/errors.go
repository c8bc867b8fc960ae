package classerrors

import (
	"net/http"

	"go-academy/internal/shared/apperror"
)

var (
	ErrClassNotFound = apperror.New(
		apperror.CodeNotFound,
		"Class not found",
		http.StatusNotFound,
	)

	ErrInvalidScheduledAt = apperror.New(
		apperror.CodeInvalidInput,
		"scheduled_at must be a valid RFC3339 timestamp",
		http.StatusBadRequest,
	)

	ErrClassNotScheduled = apperror.New(
		apperror.CodeInvalidState,
		"Only scheduled classes can change status",
		http.StatusUnprocessableEntity,
	)
)

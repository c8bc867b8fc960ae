package salarymetricserrors

import (
	"net/http"

	"go-academy/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff member not found",
		http.StatusNotFound,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be in YYYY-MM format",
		http.StatusBadRequest,
	)

	ErrMetricsUnavailable = apperror.New(
		apperror.CodeInvalidInput,
		"Detailed metrics are unavailable for this period and fallback is disabled",
		http.StatusUnprocessableEntity,
	)
)

package salarycalcerrors

import (
	"net/http"

	"go-academy/internal/shared/apperror"
)

var (
	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"staff_id is required and must be a valid id",
		http.StatusBadRequest,
	)

	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)

	ErrCalculationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary calculation not found",
		http.StatusNotFound,
	)

	ErrPolicyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Salary policy is deactivated",
		http.StatusUnprocessableEntity,
	)

	ErrNotApprovable = apperror.New(
		apperror.CodeInvalidState,
		"Only calculated results can be approved",
		http.StatusUnprocessableEntity,
	)

	ErrNotPayable = apperror.New(
		apperror.CodeInvalidState,
		"Only approved results can be marked as paid",
		http.StatusUnprocessableEntity,
	)
)

package salarypolicyerrors

import (
	"net/http"

	"go-academy/internal/shared/apperror"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary policy not found",
		http.StatusNotFound,
	)

	ErrPolicyNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A salary policy with this name already exists",
		http.StatusConflict,
	)

	ErrUnknownPolicyType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown policy type",
		http.StatusBadRequest,
	)

	ErrNoDefaultPolicy = apperror.New(
		apperror.CodeNotFound,
		"No default salary policy is configured for this tenant",
		http.StatusNotFound,
	)

	ErrAssignmentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Staff member already has a policy assignment",
		http.StatusConflict,
	)

	ErrNoPolicyForStaff = apperror.New(
		apperror.CodeNotFound,
		"No salary policy is assigned to this staff member",
		http.StatusNotFound,
	)
)

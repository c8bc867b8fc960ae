package attendanceerrors

import (
	"net/http"

	"go-academy/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Already checked in for today",
		http.StatusConflict,
	)

	ErrNoOpenAttendance = apperror.New(
		apperror.CodeNotFound,
		"No open attendance record for today",
		http.StatusNotFound,
	)

	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Already checked out for today",
		http.StatusConflict,
	)
)

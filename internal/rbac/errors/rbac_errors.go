package rbacerrors

import (
	"net/http"

	"go-hradmin/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrUnknownPermission = apperror.New(
		apperror.CodeInvalidInput,
		"unknown permission name",
		http.StatusBadRequest,
	)
	ErrInvalidEffect = apperror.New(
		apperror.CodeInvalidInput,
		"override effect must be grant or revoke",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

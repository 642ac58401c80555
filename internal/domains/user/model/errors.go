package model

import (
	"errors"

	"roll-backend/internal/shared/apperr"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeInvalidUser        = "USR002"
	ErrCodeDuplicateEmail     = "USR003"
	ErrCodeDuplicateCpf       = "USR004"
	ErrCodeTypeImmutable      = "USR005"
	ErrCodeCnpjOwnerReadOnly  = "USR006"
	ErrCodeOwnerCpfImmutable  = "USR007"
	ErrCodeOwnerPhoneRequired = "USR008"
)

// Errors returned by the repository layer
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateCpf   = errors.New("cpf already registered")
)

// Error constructors
func NewUserNotFoundError() *apperr.Error {
	return apperr.New(apperr.KindNotFound, ErrCodeUserNotFound, "User not found", ErrUserNotFound)
}

func NewInvalidUserError(err error) error {
	return apperr.FromValidation(ErrCodeInvalidUser, err)
}

func NewDuplicateEmailError() *apperr.Error {
	return apperr.New(apperr.KindConflict, ErrCodeDuplicateEmail, "User with this email already exists", ErrDuplicateEmail)
}

func NewDuplicateCpfError() *apperr.Error {
	return apperr.New(apperr.KindConflict, ErrCodeDuplicateCpf, "User with this CPF already exists", ErrDuplicateCpf)
}

func NewTypeImmutableError() *apperr.Error {
	return apperr.Validation(ErrCodeTypeImmutable, "Cannot change user type after creation")
}

func NewCnpjOwnerReadOnlyError() *apperr.Error {
	return apperr.Validation(ErrCodeCnpjOwnerReadOnly,
		"Cannot modify cnpj_owner directly. This field is managed automatically by the system.")
}

func NewOwnerCpfImmutableError() *apperr.Error {
	return apperr.Validation(ErrCodeOwnerCpfImmutable,
		"Cannot change CPF for Owner type users. CPF is used as primary identifier for place ownership.")
}

func NewOwnerPhoneRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodeOwnerPhoneRequired, "Phone number is required for Owner type users")
}

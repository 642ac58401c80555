package model

import (
	"errors"
	"fmt"

	"roll-backend/internal/shared/apperr"
)

// Error codes
const (
	ErrCodePlaceNotFound        = "PLC001"
	ErrCodeInvalidPlace         = "PLC002"
	ErrCodeCategoryRequired     = "PLC003"
	ErrCodeCategoryNotFound     = "PLC004"
	ErrCodeOwnerCpfRequired     = "PLC005"
	ErrCodeOwnerNotFound        = "PLC006"
	ErrCodeNotAnOwner           = "PLC007"
	ErrCodeCnpjRequired         = "PLC008"
	ErrCodeDuplicateCnpj        = "PLC009"
	ErrCodeRazaoSocialRequired  = "PLC010"
	ErrCodePrivateInfoNotFound  = "PLC011"
	ErrCodeCurrentOwnerNotFound = "PLC012"
)

// Errors returned by the repository layer
var (
	ErrPlaceNotFound         = errors.New("place not found")
	ErrInfoPrivPlaceNotFound = errors.New("private info not found")
	ErrDuplicateCnpj         = errors.New("cnpj already registered")
)

// Error constructors
func NewPlaceNotFoundError() *apperr.Error {
	return apperr.New(apperr.KindNotFound, ErrCodePlaceNotFound, "Place not found", ErrPlaceNotFound)
}

func NewInvalidPlaceError(err error) error {
	return apperr.FromValidation(ErrCodeInvalidPlace, err)
}

func NewCategoryRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodeCategoryRequired, "Category title is required")
}

func NewCategoryNotFoundError(title string) *apperr.Error {
	return apperr.Referential(ErrCodeCategoryNotFound, fmt.Sprintf("Category '%s' not found", title))
}

func NewOwnerCpfRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodeOwnerCpfRequired, "Owner CPF is required")
}

func NewOwnerNotFoundError() *apperr.Error {
	return apperr.Referential(ErrCodeOwnerNotFound, "Owner not found")
}

func NewNotAnOwnerError() *apperr.Error {
	return apperr.Validation(ErrCodeNotAnOwner, "User must be of type Owner (O)")
}

func NewCnpjRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodeCnpjRequired, "CNPJ is required")
}

func NewDuplicateCnpjError() *apperr.Error {
	return apperr.New(apperr.KindConflict, ErrCodeDuplicateCnpj, "A place with this CNPJ already exists", ErrDuplicateCnpj)
}

func NewRazaoSocialRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodeRazaoSocialRequired, "razao_social is required")
}

func NewPrivateInfoNotFoundError() *apperr.Error {
	return apperr.New(apperr.KindNotFound, ErrCodePrivateInfoNotFound, "Private info for this place not found", ErrInfoPrivPlaceNotFound)
}

// NewCurrentOwnerNotFoundError is raised when a place's recorded owner no longer exists
func NewCurrentOwnerNotFoundError() *apperr.Error {
	return apperr.NotFound(ErrCodeCurrentOwnerNotFound, "Owner not found")
}

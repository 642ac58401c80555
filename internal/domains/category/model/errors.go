package model

import (
	"errors"
	"fmt"

	"roll-backend/internal/shared/apperr"
)

// Error codes
const (
	ErrCodeCategoryNotFound = "CAT001"
	ErrCodeInvalidCategory  = "CAT002"
	ErrCodeDuplicateTitle   = "CAT003"
	ErrCodeCategoryInUse    = "CAT004"
)

// Errors returned by the repository layer
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateTitle   = errors.New("category title already exists")
	ErrCategoryInUse    = errors.New("category has places")
)

// Error constructors
func NewCategoryNotFoundError() *apperr.Error {
	return apperr.New(apperr.KindNotFound, ErrCodeCategoryNotFound, "Category not found", ErrCategoryNotFound)
}

func NewDuplicateTitleError(title string) *apperr.Error {
	return apperr.New(apperr.KindConflict, ErrCodeDuplicateTitle,
		fmt.Sprintf("Category with title '%s' already exists", title), ErrDuplicateTitle)
}

func NewCategoryInUseError() *apperr.Error {
	return apperr.New(apperr.KindReferential, ErrCodeCategoryInUse,
		"Category cannot be deleted while places reference it", ErrCategoryInUse)
}

func NewInvalidCategoryError(err error) error {
	return apperr.FromValidation(ErrCodeInvalidCategory, err)
}

package model

import (
	"errors"

	"roll-backend/internal/shared/apperr"
)

// Error codes
const (
	ErrCodeCommentNotFound = "COM001"
	ErrCodeContentRequired = "COM002"
	ErrCodeEmailRequired   = "COM003"
	ErrCodeAuthorNotFound  = "COM004"
	ErrCodePlaceRequired   = "COM005"
	ErrCodePlaceNotFound   = "COM006"
	ErrCodePlaceMissing    = "COM007"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

func NewCommentNotFoundError() *apperr.Error {
	return apperr.New(apperr.KindNotFound, ErrCodeCommentNotFound, "Comment not found", ErrCommentNotFound)
}

func NewContentRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodeContentRequired, "Content is required and must be a non-empty string")
}

func NewEmailRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodeEmailRequired, "User email is required")
}

func NewAuthorNotFoundError() *apperr.Error {
	return apperr.Referential(ErrCodeAuthorNotFound, "User with this email not found")
}

func NewPlaceRequiredError() *apperr.Error {
	return apperr.Validation(ErrCodePlaceRequired, "Place ID is required")
}

// NewPlaceNotFoundError is the referential failure on comment creation (400)
func NewPlaceNotFoundError() *apperr.Error {
	return apperr.Referential(ErrCodePlaceNotFound, "Place not found")
}

// NewPlaceMissingError is returned when listing comments of an unknown place (404)
func NewPlaceMissingError() *apperr.Error {
	return apperr.NotFound(ErrCodePlaceMissing, "Place not found")
}

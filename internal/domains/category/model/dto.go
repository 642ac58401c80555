package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCategoryRequest struct {
	Title string `json:"title"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
	)
}

// UpdateCategoryRequest is sparse: a nil Title was not supplied
type UpdateCategoryRequest struct {
	Title *string `json:"title"`
}

func (r *UpdateCategoryRequest) Normalize() {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
	}
}

func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Title == nil
}

// Validate checks the title only when it was supplied
func (r UpdateCategoryRequest) Validate() error {
	if r.Title == nil {
		return nil
	}
	if err := validation.Validate(*r.Title, validation.Required, validation.Length(1, 100)); err != nil {
		return validation.Errors{"title": err}
	}
	return nil
}

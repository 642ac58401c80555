package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type CreateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"user_email"`
	Type        string `json:"type_user"`
	Cpf         string `json:"cpf"`
	PhoneNumber string `json:"phone_number"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Type = strings.TrimSpace(r.Type)
	r.Cpf = strings.TrimSpace(r.Cpf)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

func (r CreateUserRequest) Validate() error {
	isOwner := r.Type == TypeOwner
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Type, validation.Required, validation.In(TypeClient, TypeOwner).Error("must be either \"C\" (Client) or \"O\" (Owner)")),
		validation.Field(&r.Cpf, validation.When(isOwner, validation.Required.Error("is required for Owner type users"))),
		validation.Field(&r.PhoneNumber, validation.When(isOwner, validation.Required.Error("is required for Owner type users"))),
	)
}

// Presence marks a key that appeared in the request body, null included
type Presence struct {
	Set bool
}

// UnmarshalJSON is called for every present key, even a JSON null
func (p *Presence) UnmarshalJSON([]byte) error {
	p.Set = true
	return nil
}

// UpdateUserRequest is sparse: a nil field was not supplied.
// Type and CnpjOwner exist only to detect forbidden writes.
type UpdateUserRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"user_email"`
	Cpf         *string  `json:"cpf"`
	PhoneNumber *string  `json:"phone_number"`
	Type        Presence `json:"type_user"`
	CnpjOwner   Presence `json:"cnpj_owner"`
}

func (r *UpdateUserRequest) Normalize() {
	for _, p := range []*string{r.Name, r.Email, r.Cpf, r.PhoneNumber} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

// Validate checks the format of supplied fields only
func (r UpdateUserRequest) Validate() error {
	var errs validation.Errors = map[string]error{}
	if r.Name != nil {
		errs["name"] = validation.Validate(*r.Name, validation.Required, validation.Length(1, 120))
	}
	if r.Email != nil {
		errs["user_email"] = validation.Validate(*r.Email, validation.Required, is.EmailFormat)
	}
	return errs.Filter()
}

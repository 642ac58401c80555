package model

import (
	"time"

	"github.com/google/uuid"

	commentmodel "roll-backend/internal/domains/comment/model"
	placemodel "roll-backend/internal/domains/place/model"
)

// User types
const (
	TypeClient = "C"
	TypeOwner  = "O"
)

type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"user_email"`
	Type        string    `json:"type_user"`
	Cpf         *string   `json:"cpf"`
	PhoneNumber *string   `json:"phone_number"`

	// CnpjOwner lists the cnpj of every place the owner holds, in insertion order.
	// Managed by place operations only; nil for clients.
	CnpjOwner []string `json:"cnpj_owner"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsOwner() bool {
	return u.Type == TypeOwner
}

// UserDetail is the single-user read: the user plus what it owns and wrote
type UserDetail struct {
	User
	OwnedPlaces []*placemodel.InfoPrivPlace `json:"owned_places"`
	Comments    []*commentmodel.Comment     `json:"comments"`
}

// RemoveCnpj returns list without any occurrence of cnpj
func RemoveCnpj(list []string, cnpj string) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		if c != cnpj {
			out = append(out, c)
		}
	}
	return out
}

// ReplaceCnpj swaps old for replacement, keeping positions
func ReplaceCnpj(list []string, old, replacement string) []string {
	out := make([]string, len(list))
	for i, c := range list {
		if c == old {
			c = replacement
		}
		out[i] = c
	}
	return out
}

package model

import (
	"time"

	"github.com/google/uuid"

	categorymodel "roll-backend/internal/domains/category/model"
	commentmodel "roll-backend/internal/domains/comment/model"
)

// Place is the public face of an establishment
type Place struct {
	ID           uuid.UUID `json:"id"`
	PlaceName    string    `json:"place_name"`
	OpeningHours string    `json:"opening_hours"`
	ClosingHours string    `json:"closing_hours"`
	Tags         []string  `json:"tags"`
	Street       string    `json:"street"`
	StreetNumber string    `json:"street_number"`
	PhoneNumber  string    `json:"phone_number"`
	CategoryID   uuid.UUID `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations, populated depending on the read
	Category      *categorymodel.Category `json:"category,omitempty"`
	InfoPrivPlace *InfoPrivPlace          `json:"infoPrivPlace,omitempty"`
	Comments      []*commentmodel.Comment `json:"comments,omitempty"`
}

// InfoPrivPlace holds the legal data of a place. Exactly one per place.
type InfoPrivPlace struct {
	ID          uuid.UUID `json:"id"`
	RazaoSocial string    `json:"razao_social"`
	Cnpj        string    `json:"cnpj"`
	PlaceID     uuid.UUID `json:"place_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaceUpdate is the sparse set of public columns to write; nil means unchanged
type PlaceUpdate struct {
	PlaceName    *string
	OpeningHours *string
	ClosingHours *string
	Tags         *[]string
	Street       *string
	StreetNumber *string
	PhoneNumber  *string
	CategoryID   *uuid.UUID
}

func (u PlaceUpdate) IsEmpty() bool {
	return u.PlaceName == nil && u.OpeningHours == nil && u.ClosingHours == nil &&
		u.Tags == nil && u.Street == nil && u.StreetNumber == nil &&
		u.PhoneNumber == nil && u.CategoryID == nil
}

// Apply copies the set fields onto p
func (u PlaceUpdate) Apply(p *Place) {
	if u.PlaceName != nil {
		p.PlaceName = *u.PlaceName
	}
	if u.OpeningHours != nil {
		p.OpeningHours = *u.OpeningHours
	}
	if u.ClosingHours != nil {
		p.ClosingHours = *u.ClosingHours
	}
	if u.Tags != nil {
		p.Tags = append([]string{}, (*u.Tags)...)
	}
	if u.Street != nil {
		p.Street = *u.Street
	}
	if u.StreetNumber != nil {
		p.StreetNumber = *u.StreetNumber
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	if u.CategoryID != nil {
		p.CategoryID = *u.CategoryID
	}
}

// SearchFilter is the repository form of a search; empty fields are ignored
type SearchFilter struct {
	Name       string
	Tag        string
	CategoryID *uuid.UUID
}

package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// CREATE
// =====================================================

// CreatePlaceRequest carries both public and private data of a new place.
// category_title and owner_cpf are resolved to ids by the service.
type CreatePlaceRequest struct {
	CategoryTitle string `json:"category_title"`
	OwnerCpf      string `json:"owner_cpf"`
	Cnpj          string `json:"cnpj"`
	RazaoSocial   string `json:"razao_social"`

	PlaceName    string   `json:"place_name"`
	OpeningHours string   `json:"opening_hours"`
	ClosingHours string   `json:"closing_hours"`
	Tags         []string `json:"tags"`
	Street       string   `json:"street"`
	StreetNumber string   `json:"street_number"`
	PhoneNumber  string   `json:"phone_number"`
}

func (r *CreatePlaceRequest) Normalize() {
	r.CategoryTitle = strings.TrimSpace(r.CategoryTitle)
	r.OwnerCpf = strings.TrimSpace(r.OwnerCpf)
	r.Cnpj = strings.TrimSpace(r.Cnpj)
	r.RazaoSocial = strings.TrimSpace(r.RazaoSocial)
	r.PlaceName = strings.TrimSpace(r.PlaceName)
	r.OpeningHours = strings.TrimSpace(r.OpeningHours)
	r.ClosingHours = strings.TrimSpace(r.ClosingHours)
	r.Street = strings.TrimSpace(r.Street)
	r.StreetNumber = strings.TrimSpace(r.StreetNumber)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Tags = normalizeTags(r.Tags)
}

// ValidatePublic checks the public fields in order and stops at the first failure
func (r CreatePlaceRequest) ValidatePublic() error {
	checks := []fieldCheck{
		{"place_name", r.PlaceName, requiredText},
		{"opening_hours", r.OpeningHours, hoursRules},
		{"closing_hours", r.ClosingHours, hoursRules},
		{"street", r.Street, requiredText},
		{"street_number", r.StreetNumber, requiredText},
		{"phone_number", r.PhoneNumber, requiredText},
	}
	if err := firstFailure(checks); err != nil {
		return err
	}
	return validateTags(r.Tags)
}

// =====================================================
// UPDATE
// =====================================================

// UpdatePlaceRequest is sparse: a nil field was not supplied
type UpdatePlaceRequest struct {
	PlaceName     *string   `json:"place_name"`
	OpeningHours  *string   `json:"opening_hours"`
	ClosingHours  *string   `json:"closing_hours"`
	Tags          *[]string `json:"tags"`
	Street        *string   `json:"street"`
	StreetNumber  *string   `json:"street_number"`
	PhoneNumber   *string   `json:"phone_number"`
	CategoryTitle *string   `json:"category_title"`

	RazaoSocial *string `json:"razao_social"`
	Cnpj        *string `json:"cnpj"`
	OwnerCpf    *string `json:"owner_cpf"`
}

func (r *UpdatePlaceRequest) Normalize() {
	for _, p := range []*string{
		r.PlaceName, r.OpeningHours, r.ClosingHours, r.Street, r.StreetNumber,
		r.PhoneNumber, r.CategoryTitle, r.RazaoSocial, r.Cnpj, r.OwnerCpf,
	} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if r.Tags != nil {
		tags := normalizeTags(*r.Tags)
		r.Tags = &tags
	}
}

func (r UpdatePlaceRequest) HasPublic() bool {
	return r.PlaceName != nil || r.OpeningHours != nil || r.ClosingHours != nil ||
		r.Tags != nil || r.Street != nil || r.StreetNumber != nil ||
		r.PhoneNumber != nil || r.CategoryTitle != nil
}

func (r UpdatePlaceRequest) HasPrivate() bool {
	return r.RazaoSocial != nil || r.Cnpj != nil || r.OwnerCpf != nil
}

// ValidatePublic checks only the supplied public fields
func (r UpdatePlaceRequest) ValidatePublic() error {
	var checks []fieldCheck
	add := func(name string, value *string, rules []validation.Rule) {
		if value != nil {
			checks = append(checks, fieldCheck{name, *value, rules})
		}
	}
	add("place_name", r.PlaceName, requiredText)
	add("opening_hours", r.OpeningHours, hoursRules)
	add("closing_hours", r.ClosingHours, hoursRules)
	add("street", r.Street, requiredText)
	add("street_number", r.StreetNumber, requiredText)
	add("phone_number", r.PhoneNumber, requiredText)
	add("category_title", r.CategoryTitle, requiredText)

	if err := firstFailure(checks); err != nil {
		return err
	}
	if r.Tags != nil {
		return validateTags(*r.Tags)
	}
	return nil
}

// =====================================================
// SEARCH
// =====================================================

type SearchRequest struct {
	Name     string `form:"name"`
	Tag      string `form:"tag"`
	Category string `form:"category"`
}

func (r *SearchRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Tag = strings.TrimSpace(r.Tag)
	r.Category = strings.TrimSpace(r.Category)
}

// =====================================================
// HELPERS
// =====================================================

var (
	requiredText = []validation.Rule{validation.Required, validation.Length(1, 255)}
	hoursRules   = []validation.Rule{
		validation.Required,
		validation.Match(HoursPattern).Error("must be in HH:MM format"),
	}
)

type fieldCheck struct {
	name  string
	value string
	rules []validation.Rule
}

func firstFailure(checks []fieldCheck) error {
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return validation.Errors{c.name: err}
		}
	}
	return nil
}

func validateTags(tags []string) error {
	err := validation.Validate(tags,
		validation.Length(0, MaxTags),
		validation.Each(validation.Length(1, 50)),
	)
	if err != nil {
		return validation.Errors{"tags": err}
	}
	return nil
}

// normalizeTags trims tags and drops blanks; never returns nil
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

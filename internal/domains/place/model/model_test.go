package model

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursPattern(t *testing.T) {
	for _, ok := range []string{"00:00", "08:30", "19:59", "23:59"} {
		assert.True(t, HoursPattern.MatchString(ok), ok)
	}
	for _, bad := range []string{"24:00", "8:30", "08:60", "0830", "08:30:00", ""} {
		assert.False(t, HoursPattern.MatchString(bad), bad)
	}
}

func validCreate() CreatePlaceRequest {
	return CreatePlaceRequest{
		PlaceName:    "Central",
		OpeningHours: "08:00",
		ClosingHours: "18:00",
		Street:       "Main",
		StreetNumber: "10",
		PhoneNumber:  "555",
		Tags:         []string{"coffee"},
	}
}

func TestCreatePlaceRequest_ValidatePublic(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreatePlaceRequest)
		field  string
	}{
		{"valid", func(r *CreatePlaceRequest) {}, ""},
		{"no tags", func(r *CreatePlaceRequest) { r.Tags = []string{} }, ""},
		{"missing name", func(r *CreatePlaceRequest) { r.PlaceName = "" }, "place_name"},
		{"bad opening", func(r *CreatePlaceRequest) { r.OpeningHours = "8h" }, "opening_hours"},
		{"bad closing", func(r *CreatePlaceRequest) { r.ClosingHours = "25:00" }, "closing_hours"},
		{"first failure wins", func(r *CreatePlaceRequest) { r.Street = ""; r.PhoneNumber = "" }, "street"},
		{"too many tags", func(r *CreatePlaceRequest) { r.Tags = make([]string, MaxTags+1); fill(r.Tags) }, "tags"},
		{"tag too long", func(r *CreatePlaceRequest) { r.Tags = []string{strings.Repeat("x", 51)} }, "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			err := req.ValidatePublic()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func fill(tags []string) {
	for i := range tags {
		tags[i] = "t"
	}
}

func TestCreatePlaceRequest_NormalizeTags(t *testing.T) {
	req := validCreate()
	req.Tags = []string{" beer ", "", "  ", "wine"}

	req.Normalize()

	assert.Equal(t, []string{"beer", "wine"}, req.Tags)

	req.Tags = nil
	req.Normalize()
	assert.NotNil(t, req.Tags)
	assert.Empty(t, req.Tags)
}

func TestUpdatePlaceRequest_Sections(t *testing.T) {
	name := "x"
	cnpj := "1"

	assert.False(t, UpdatePlaceRequest{}.HasPublic())
	assert.False(t, UpdatePlaceRequest{}.HasPrivate())
	assert.True(t, UpdatePlaceRequest{PlaceName: &name}.HasPublic())
	assert.True(t, UpdatePlaceRequest{Cnpj: &cnpj}.HasPrivate())
	assert.False(t, UpdatePlaceRequest{Cnpj: &cnpj}.HasPublic())
}

func TestUpdatePlaceRequest_ValidatePublic_OnlySupplied(t *testing.T) {
	hours := "99:99"
	blank := ""

	assert.NoError(t, UpdatePlaceRequest{}.ValidatePublic())

	var errs validation.Errors
	require.ErrorAs(t, UpdatePlaceRequest{ClosingHours: &hours}.ValidatePublic(), &errs)
	assert.Contains(t, errs, "closing_hours")

	require.ErrorAs(t, UpdatePlaceRequest{CategoryTitle: &blank}.ValidatePublic(), &errs)
	assert.Contains(t, errs, "category_title")
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorymodel "roll-backend/internal/domains/category/model"
	commentmodel "roll-backend/internal/domains/comment/model"
	placemodel "roll-backend/internal/domains/place/model"
	placeservice "roll-backend/internal/domains/place/service"
	"roll-backend/internal/domains/user/model"
	"roll-backend/internal/shared/apperr"
	"roll-backend/internal/testutil/memdb"
)

type fixture struct {
	db     *memdb.Store
	places placeservice.ServiceInterface
	svc    ServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memdb.New()
	places := placeservice.NewPlaceService(db, db.Places(), db.Infos(), db.Categories(), db.Users(), db.Comments(), memdb.NewCache(), time.Minute)
	svc := NewUserService(db, db.Users(), db.Infos(), db.Comments(), places)

	require.NoError(t, db.Categories().Create(context.Background(), &categorymodel.Category{ID: uuid.New(), Title: "Bakery"}))
	return &fixture{db: db, places: places, svc: svc}
}

func (f *fixture) owner(t *testing.T, email, cpf string) *model.User {
	t.Helper()
	u, err := f.svc.Create(context.Background(), model.CreateUserRequest{
		Name: "Owner " + cpf, Email: email, Type: model.TypeOwner, Cpf: cpf, PhoneNumber: "555",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) client(t *testing.T, email string) *model.User {
	t.Helper()
	u, err := f.svc.Create(context.Background(), model.CreateUserRequest{
		Name: "Client", Email: email, Type: model.TypeClient,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) place(t *testing.T, cpf, cnpj string) *placemodel.Place {
	t.Helper()
	p, err := f.places.Create(context.Background(), placemodel.CreatePlaceRequest{
		CategoryTitle: "Bakery",
		OwnerCpf:      cpf,
		Cnpj:          cnpj,
		RazaoSocial:   "Company " + cnpj,
		PlaceName:     "Place " + cnpj,
		OpeningHours:  "08:00",
		ClosingHours:  "18:00",
		Street:        "Rua B",
		StreetNumber:  "1",
		PhoneNumber:   "555",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) comment(t *testing.T, placeID, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, f.db.Comments().Create(context.Background(), &commentmodel.Comment{
		ID: uuid.New(), Content: "nice", PlaceID: placeID, UserID: userID,
	}))
}

func ptr[T any](v T) *T { return &v }

func assertCode(t *testing.T, err error, kind apperr.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, code, appErr.Code)
}

// =====================================================
// CREATE
// =====================================================

func TestCreate(t *testing.T) {
	f := newFixture(t)

	owner := f.owner(t, "owner@example.com", "111")
	assert.True(t, owner.IsOwner())
	assert.Equal(t, []string{}, owner.CnpjOwner)
	assert.Equal(t, "111", *owner.Cpf)

	client := f.client(t, "client@example.com")
	assert.Nil(t, client.CnpjOwner)
	assert.Nil(t, client.Cpf)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		req     model.CreateUserRequest
		message string
	}{
		{"missing name", model.CreateUserRequest{Email: "a@example.com", Type: "C"}, "name"},
		{"bad email", model.CreateUserRequest{Name: "A", Email: "not-an-email", Type: "C"}, "user_email"},
		{"bad type", model.CreateUserRequest{Name: "A", Email: "a@example.com", Type: "X"}, "type_user"},
		{"owner without cpf", model.CreateUserRequest{Name: "A", Email: "a@example.com", Type: "O", PhoneNumber: "555"}, "cpf"},
		{"owner without phone", model.CreateUserRequest{Name: "A", Email: "a@example.com", Type: "O", Cpf: "1"}, "phone_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req)
			assertCode(t, err, apperr.KindValidation, model.ErrCodeInvalidUser)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.client(t, "same@example.com")

	_, err := f.svc.Create(context.Background(), model.CreateUserRequest{
		Name: "Other", Email: "same@example.com", Type: model.TypeClient,
	})
	assertCode(t, err, apperr.KindConflict, model.ErrCodeDuplicateEmail)

	users, _, _, _ := f.db.Counts()
	assert.Equal(t, 1, users)
}

func TestCreate_DuplicateCpf(t *testing.T) {
	f := newFixture(t)
	f.owner(t, "a@example.com", "111")

	_, err := f.svc.Create(context.Background(), model.CreateUserRequest{
		Name: "Other", Email: "b@example.com", Type: model.TypeClient, Cpf: "111",
	})
	assertCode(t, err, apperr.KindConflict, model.ErrCodeDuplicateCpf)
}

// =====================================================
// READ
// =====================================================

func TestGetByID_Detail(t *testing.T) {
	f := newFixture(t)
	owner := f.owner(t, "owner@example.com", "111")
	p1 := f.place(t, "111", "A1")
	f.place(t, "111", "A2")
	f.comment(t, p1.ID, owner.ID)

	detail, err := f.svc.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2"}, detail.CnpjOwner)
	require.Len(t, detail.OwnedPlaces, 2)
	assert.Equal(t, "A1", detail.OwnedPlaces[0].Cnpj)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, p1.ID, detail.Comments[0].PlaceID)

	_, err = f.svc.GetByID(context.Background(), uuid.New())
	assertCode(t, err, apperr.KindNotFound, model.ErrCodeUserNotFound)
}

// =====================================================
// UPDATE
// =====================================================

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	client := f.client(t, "client@example.com")

	got, err := f.svc.Update(context.Background(), client.ID, model.UpdateUserRequest{
		Name:  ptr(" Renamed "),
		Email: ptr("new@example.com"),
		Cpf:   ptr("999"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "999", *got.Cpf)

	stored, err := f.db.Users().GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, client.ID, stored.ID)
}

func TestUpdate_Rejections(t *testing.T) {
	f := newFixture(t)
	owner := f.owner(t, "owner@example.com", "111")
	client := f.client(t, "client@example.com")
	f.owner(t, "other@example.com", "222")

	tests := []struct {
		name string
		id   uuid.UUID
		req  model.UpdateUserRequest
		kind apperr.Kind
		code string
	}{
		{"unknown user", uuid.New(), model.UpdateUserRequest{Name: ptr("x")}, apperr.KindNotFound, model.ErrCodeUserNotFound},
		{"type is immutable", client.ID, model.UpdateUserRequest{Type: model.Presence{Set: true}}, apperr.KindValidation, model.ErrCodeTypeImmutable},
		{"cnpj_owner is read only", owner.ID, model.UpdateUserRequest{CnpjOwner: model.Presence{Set: true}}, apperr.KindValidation, model.ErrCodeCnpjOwnerReadOnly},
		{"bad email", client.ID, model.UpdateUserRequest{Email: ptr("nope")}, apperr.KindValidation, model.ErrCodeInvalidUser},
		{"email taken", client.ID, model.UpdateUserRequest{Email: ptr("owner@example.com")}, apperr.KindConflict, model.ErrCodeDuplicateEmail},
		{"owner cpf is fixed", owner.ID, model.UpdateUserRequest{Cpf: ptr("333")}, apperr.KindValidation, model.ErrCodeOwnerCpfImmutable},
		{"client cpf taken", client.ID, model.UpdateUserRequest{Cpf: ptr("222")}, apperr.KindConflict, model.ErrCodeDuplicateCpf},
		{"owner phone cannot be cleared", owner.ID, model.UpdateUserRequest{PhoneNumber: ptr(" ")}, apperr.KindValidation, model.ErrCodeOwnerPhoneRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Update(context.Background(), tt.id, tt.req)
			assertCode(t, err, tt.kind, tt.code)
		})
	}
}

func TestUpdate_KeepsOwnEmail(t *testing.T) {
	f := newFixture(t)
	owner := f.owner(t, "owner@example.com", "111")

	got, err := f.svc.Update(context.Background(), owner.ID, model.UpdateUserRequest{Email: ptr("owner@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", got.Email)
}

// =====================================================
// EXCLUDE
// =====================================================

func TestExclude_OwnerCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@example.com", "111")
	f.owner(t, "other@example.com", "222")
	visitor := f.client(t, "visitor@example.com")

	p1 := f.place(t, "111", "A1")
	p2 := f.place(t, "111", "A2")
	kept := f.place(t, "222", "B1")

	f.comment(t, p1.ID, visitor.ID)
	f.comment(t, p2.ID, owner.ID)
	f.comment(t, kept.ID, owner.ID)
	f.comment(t, kept.ID, visitor.ID)

	require.NoError(t, f.svc.Exclude(ctx, owner.ID))

	_, err := f.db.Users().GetByID(ctx, owner.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	for _, id := range []uuid.UUID{p1.ID, p2.ID} {
		_, err := f.db.Places().GetByID(ctx, id)
		assert.ErrorIs(t, err, placemodel.ErrPlaceNotFound)
	}

	users, places, infos, comments := f.db.Counts()
	assert.Equal(t, 2, users)
	assert.Equal(t, 1, places)
	assert.Equal(t, 1, infos)
	assert.Equal(t, 1, comments, "only the visitor's comment on the kept place survives")
	assert.Equal(t, 4, f.db.Commits, "three place creates and one cascade")
}

func TestExclude_SkipsCnpjWithoutPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@example.com", "111")
	f.place(t, "111", "A1")
	require.NoError(t, f.db.Users().SetCnpjOwner(ctx, owner.ID, []string{"ghost", "A1"}))

	require.NoError(t, f.svc.Exclude(ctx, owner.ID))

	users, places, infos, _ := f.db.Counts()
	assert.Zero(t, users)
	assert.Zero(t, places)
	assert.Zero(t, infos)
}

func TestExclude_Client(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.owner(t, "owner@example.com", "111")
	client := f.client(t, "client@example.com")
	p := f.place(t, "111", "A1")
	f.comment(t, p.ID, client.ID)

	require.NoError(t, f.svc.Exclude(ctx, client.ID))

	users, places, _, comments := f.db.Counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, places)
	assert.Zero(t, comments)
}

func TestExclude_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Exclude(context.Background(), uuid.New())
	assertCode(t, err, apperr.KindNotFound, model.ErrCodeUserNotFound)
}

func TestExclude_FailureRestoresEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.owner(t, "owner@example.com", "111")
	f.place(t, "111", "A1")
	f.place(t, "111", "A2")

	f.db.FailNext("user.Delete", errors.New("connection reset"))

	require.Error(t, f.svc.Exclude(ctx, owner.ID))

	users, places, infos, _ := f.db.Counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 2, places)
	assert.Equal(t, 2, infos)

	stored, err := f.db.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, stored.CnpjOwner)
}

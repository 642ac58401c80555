package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorymodel "roll-backend/internal/domains/category/model"
	"roll-backend/internal/domains/comment/model"
	placemodel "roll-backend/internal/domains/place/model"
	usermodel "roll-backend/internal/domains/user/model"
	"roll-backend/internal/shared/apperr"
	"roll-backend/internal/testutil/memdb"
)

type fixture struct {
	db    *memdb.Store
	svc   ServiceInterface
	user  *usermodel.User
	place *placemodel.Place
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memdb.New()

	category := &categorymodel.Category{ID: uuid.New(), Title: "Bakery"}
	require.NoError(t, db.Categories().Create(ctx, category))

	user := &usermodel.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Type: usermodel.TypeClient}
	require.NoError(t, db.Users().Create(ctx, user))

	place := &placemodel.Place{ID: uuid.New(), PlaceName: "Central", CategoryID: category.ID}
	require.NoError(t, db.Places().Create(ctx, place))

	return &fixture{
		db:    db,
		svc:   NewCommentService(db.Comments(), db.Users(), db.Places()),
		user:  user,
		place: place,
	}
}

func (f *fixture) request(content string) model.CreateCommentRequest {
	return model.CreateCommentRequest{
		Content:   content,
		UserEmail: f.user.Email,
		PlaceID:   f.place.ID.String(),
	}
}

func assertKind(t *testing.T, err error, kind apperr.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind)
	assert.Equal(t, code, appErr.Code)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	c, err := f.svc.Create(context.Background(), f.request("  lovely place "))
	require.NoError(t, err)

	assert.Equal(t, "lovely place", c.Content)
	assert.Equal(t, f.user.ID, c.UserID)
	assert.Equal(t, f.place.ID, c.PlaceID)
}

func TestCreate_ValidationOrder(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*model.CreateCommentRequest)
		kind   apperr.Kind
		code   string
	}{
		{"blank content first", func(r *model.CreateCommentRequest) { r.Content = " "; r.UserEmail = "" }, apperr.KindValidation, model.ErrCodeContentRequired},
		{"missing email", func(r *model.CreateCommentRequest) { r.UserEmail = ""; r.PlaceID = "" }, apperr.KindValidation, model.ErrCodeEmailRequired},
		{"unknown author", func(r *model.CreateCommentRequest) { r.UserEmail = "ghost@example.com" }, apperr.KindReferential, model.ErrCodeAuthorNotFound},
		{"missing place", func(r *model.CreateCommentRequest) { r.PlaceID = "" }, apperr.KindValidation, model.ErrCodePlaceRequired},
		{"malformed place id", func(r *model.CreateCommentRequest) { r.PlaceID = "abc" }, apperr.KindReferential, model.ErrCodePlaceNotFound},
		{"unknown place", func(r *model.CreateCommentRequest) { r.PlaceID = uuid.NewString() }, apperr.KindReferential, model.ErrCodePlaceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("hello")
			tt.mutate(&req)

			_, err := f.svc.Create(context.Background(), req)
			assertKind(t, err, tt.kind, tt.code)
		})
	}

	_, _, _, comments := f.db.Counts()
	assert.Zero(t, comments)
}

func TestListByPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second"} {
		_, err := f.svc.Create(ctx, f.request(content))
		require.NoError(t, err)
	}

	got, err := f.svc.ListByPlace(ctx, f.place.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "ana@example.com", got[0].User.Email)

	_, err = f.svc.ListByPlace(ctx, uuid.New())
	assertKind(t, err, apperr.KindNotFound, model.ErrCodePlaceMissing)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, f.request("bye"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, c.ID))

	err = f.svc.Delete(ctx, c.ID)
	assertKind(t, err, apperr.KindNotFound, model.ErrCodeCommentNotFound)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roll-backend/internal/domains/place/model"
	"roll-backend/internal/shared/middleware"
)

// --- Mock PlaceService ---
type MockPlaceService struct {
	mock.Mock
}

func (m *MockPlaceService) Create(ctx context.Context, req model.CreatePlaceRequest) (*model.Place, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockPlaceService) List(ctx context.Context) ([]*model.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Place), args.Error(1)
}

func (m *MockPlaceService) GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockPlaceService) Search(ctx context.Context, req model.SearchRequest) ([]*model.Place, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Place), args.Error(1)
}

func (m *MockPlaceService) PublicProfile(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockPlaceService) Update(ctx context.Context, id uuid.UUID, req model.UpdatePlaceRequest) (*model.Place, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockPlaceService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaceService) DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockPlaceService) EvictPlaces(ctx context.Context, ids ...uuid.UUID) {
	m.Called(ctx, ids)
}

// --- Helpers ---

func init() {
	gin.SetMode(gin.TestMode)
}

func setup() (*gin.Engine, *MockPlaceService) {
	svc := new(MockPlaceService)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewPlaceHandler(svc).RegisterRoutes(r)
	return r, svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// --- Tests ---

func TestCreate(t *testing.T) {
	r, svc := setup()
	place := &model.Place{ID: uuid.New(), PlaceName: "Central"}

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req model.CreatePlaceRequest) bool {
		return req.Cnpj == "999" && req.OwnerCpf == "111" && req.CategoryTitle == "Bakery"
	})).Return(place, nil)

	w := do(r, http.MethodPost, "/estabelecimentos",
		`{"category_title":"Bakery","owner_cpf":"111","cnpj":"999","place_name":"Central"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"place_name":"Central"`)
	svc.AssertExpectations(t)
}

func TestCreate_MalformedBody(t *testing.T) {
	r, svc := setup()

	w := do(r, http.MethodPost, "/estabelecimentos", `{"tags": "not-a-list"`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_BODY", errorCode(t, w))
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"duplicate cnpj", model.NewDuplicateCnpjError(), http.StatusConflict, model.ErrCodeDuplicateCnpj},
		{"unknown category", model.NewCategoryNotFoundError("Pharmacy"), http.StatusBadRequest, model.ErrCodeCategoryNotFound},
		{"validation", model.NewRazaoSocialRequiredError(), http.StatusBadRequest, model.ErrCodeRazaoSocialRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := setup()
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := do(r, http.MethodPost, "/estabelecimentos", `{}`)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestList(t *testing.T) {
	r, svc := setup()
	svc.On("List", mock.Anything).Return([]*model.Place{}, nil)

	w := do(r, http.MethodGet, "/estabelecimentos", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearch_BindsQuery(t *testing.T) {
	r, svc := setup()
	svc.On("Search", mock.Anything, model.SearchRequest{Name: "moon", Tag: "beer", Category: "Bar"}).
		Return([]*model.Place{}, nil)

	w := do(r, http.MethodGet, "/estabelecimentos/search?name=moon&tag=beer&category=Bar", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestGet(t *testing.T) {
	r, svc := setup()
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(&model.Place{ID: id, PlaceName: "Central"}, nil)

	w := do(r, http.MethodGet, "/estabelecimentos/"+id.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestGet_MalformedIDIsNotFound(t *testing.T) {
	r, svc := setup()

	w := do(r, http.MethodGet, "/estabelecimentos/not-a-uuid", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodePlaceNotFound, errorCode(t, w))
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPublicProfile(t *testing.T) {
	r, svc := setup()
	id := uuid.New()
	svc.On("PublicProfile", mock.Anything, id).Return(nil, model.NewPlaceNotFoundError())

	w := do(r, http.MethodGet, "/estabelecimentos/"+id.String()+"/public", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodePlaceNotFound, errorCode(t, w))
}

func TestUpdate_SparseBody(t *testing.T) {
	r, svc := setup()
	id := uuid.New()

	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(req model.UpdatePlaceRequest) bool {
		return req.PlaceName != nil && *req.PlaceName == "Renamed" &&
			req.OwnerCpf == nil && req.Cnpj == nil && req.Tags == nil
	})).Return(&model.Place{ID: id, PlaceName: "Renamed"}, nil)

	w := do(r, http.MethodPut, "/estabelecimentos/"+id.String(), `{"place_name":"Renamed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	r, svc := setup()
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil)

	w := do(r, http.MethodDelete, "/estabelecimentos/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

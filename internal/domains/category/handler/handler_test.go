package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"roll-backend/internal/domains/category/model"
	"roll-backend/internal/shared/middleware"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context) ([]*model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, req model.UpdateCategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setup() (*gin.Engine, *MockCategoryService) {
	svc := new(MockCategoryService)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewCategoryHandler(svc).RegisterRoutes(r)
	return r, svc
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	r, svc := setup()
	svc.On("Create", mock.Anything, model.CreateCategoryRequest{Title: "Bakery"}).
		Return(&model.Category{ID: uuid.New(), Title: "Bakery"}, nil)

	w := do(r, http.MethodPost, "/categories", `{"title":"Bakery"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Bakery"`)
}

func TestCreate_Duplicate(t *testing.T) {
	r, svc := setup()
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, model.NewDuplicateTitleError("Bakery"))

	w := do(r, http.MethodPost, "/categories", `{"title":"Bakery"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeDuplicateTitle)
}

func TestList_InternalErrorIsHidden(t *testing.T) {
	r, svc := setup()
	svc.On("List", mock.Anything).Return(nil, errors.New("connection reset"))

	w := do(r, http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestUpdate(t *testing.T) {
	r, svc := setup()
	id := uuid.New()
	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(req model.UpdateCategoryRequest) bool {
		return req.Title != nil && *req.Title == "Bars"
	})).
		Return(&model.Category{ID: id, Title: "Bars"}, nil)

	w := do(r, http.MethodPut, "/categories/"+id.String(), `{"title":"Bars"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestUpdate_EmptyBody(t *testing.T) {
	r, svc := setup()
	id := uuid.New()
	svc.On("Update", mock.Anything, id, model.UpdateCategoryRequest{}).
		Return(&model.Category{ID: id, Title: "Bakery"}, nil)

	w := do(r, http.MethodPut, "/categories/"+id.String(), `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Bakery"`)
}

func TestDelete_InUse(t *testing.T) {
	r, svc := setup()
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(model.NewCategoryInUseError())

	w := do(r, http.MethodDelete, "/categories/"+id.String(), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeCategoryInUse)
}

func TestGet_MalformedID(t *testing.T) {
	r, svc := setup()

	w := do(r, http.MethodGet, "/categories/abc", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

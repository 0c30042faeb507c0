package category

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/apperrors"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]service.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]service.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, name string) (*service.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*service.Category)
	return c, args.Error(1)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategoryService) Suggest(ctx context.Context, description string) string {
	return m.Called(ctx, description).String(0)
}

func newTestAPI(t *testing.T, svc *mockCategoryService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListCategoriesHandler(svc).Register(api)
	NewCreateCategoryHandler(svc).Register(api)
	NewDeleteCategoryHandler(svc).Register(api)
	NewSuggestHandler(svc).Register(api)
	return api
}

func TestHTTP_ListCategories(t *testing.T) {
	mockSvc := new(mockCategoryService)
	mockSvc.On("ListCategories", mock.Anything).Return([]service.Category{
		{ID: uuid.Must(uuid.NewV4()), Name: "Entertainment", CreatedAt: time.Now()},
		{ID: uuid.Must(uuid.NewV4()), Name: "Groceries", CreatedAt: time.Now()},
	}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/category")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Categories, 2)
	assert.Equal(t, "Entertainment", body.Categories[0].Name)
}

func TestHTTP_CreateCategory(t *testing.T) {
	created := &service.Category{ID: uuid.Must(uuid.NewV4()), Name: "Travel", CreatedAt: time.Now()}

	mockSvc := new(mockCategoryService)
	mockSvc.On("CreateCategory", mock.Anything, "Travel").Return(created, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/category", map[string]any{"name": "Travel"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Category
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, created.ID.String(), body.ID)
}

func TestHTTP_CreateCategory_Blank(t *testing.T) {
	mockSvc := new(mockCategoryService)
	mockSvc.On("CreateCategory", mock.Anything, " ").Return(nil, apperrors.NewValidationError("name", "must not be empty"))

	resp := newTestAPI(t, mockSvc).Post("/v1/category", map[string]any{"name": " "})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_DeleteCategory(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategoryService)
	mockSvc.On("DeleteCategory", mock.Anything, id).Return(nil)

	resp := newTestAPI(t, mockSvc).Delete("/v1/category/" + id.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeleteCategory_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategoryService)
	mockSvc.On("DeleteCategory", mock.Anything, id).Return(apperrors.NewNotFoundError("Category", id))

	resp := newTestAPI(t, mockSvc).Delete("/v1/category/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_Suggest(t *testing.T) {
	mockSvc := new(mockCategoryService)
	mockSvc.On("Suggest", mock.Anything, "weekly shop").Return("groceries")

	resp := newTestAPI(t, mockSvc).Get("/v1/category/suggest?description=weekly%20shop")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "groceries", body.Category)
}

func TestHTTP_Suggest_MissingDescription(t *testing.T) {
	mockSvc := new(mockCategoryService)

	resp := newTestAPI(t, mockSvc).Get("/v1/category/suggest")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Suggest")
}

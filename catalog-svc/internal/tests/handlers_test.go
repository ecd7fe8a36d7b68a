package tests

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/api/http"
	"github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type handlerMocks struct {
	categories *mocks.CategoryServiceInterface
	dishes     *mocks.DishServiceInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		categories: mocks.NewCategoryServiceInterface(t),
		dishes:     mocks.NewDishServiceInterface(t),
	}
	handler := httpapi.NewHandler(m.categories, m.dishes)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, m
}

func TestHandler_getDishes(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		prepareMocks func(handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:  "filters parsed from query",
			query: "?search=tomato&category_id=2&min_price=5&max_price=12.5&min_prep_time=10&max_prep_time=30&min_rating=4&availability=all",
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("List", mock.Anything, domain.DishFilter{
					Search:       "tomato",
					CategoryID:   intPtr(2),
					MinPrice:     floatPtr(5),
					MaxPrice:     floatPtr(12.5),
					MinPrepTime:  intPtr(10),
					MaxPrepTime:  intPtr(30),
					MinRating:    floatPtr(4),
					Availability: domain.AvailabilityAll,
				}).Return([]domain.Dish{{ID: 1, Name: "Margherita"}}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Margherita"`,
		},
		{
			name:  "no filter",
			query: "",
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("List", mock.Anything, domain.DishFilter{}).Return([]domain.Dish{}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "bad number",
			query:        "?min_price=cheap",
			expectedCode: http.StatusBadRequest,
			expectedBody: "min_price must be a number",
		},
		{
			name:         "bad availability",
			query:        "?availability=maybe",
			expectedCode: http.StatusBadRequest,
			expectedBody: "unknown availability",
		},
		{
			name:  "storage unavailable",
			query: "",
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("List", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: timeout", domain.ErrStorageUnavailable)).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: "storage unavailable",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			if testCase.prepareMocks != nil {
				testCase.prepareMocks(m)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/dishes"+testCase.query, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, testCase.expectedCode, rr.Code)
			assert.Contains(t, rr.Body.String(), testCase.expectedBody)
		})
	}
}

func TestHandler_createDish(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(handlerMocks)
		expectedCode int
	}{
		{
			name:    "created",
			payload: `{"name":"Margherita","price":10,"category_id":1,"ingredients":["Tomato"]}`,
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("Create", mock.Anything, mock.MatchedBy(func(in domain.DishInput) bool {
					return in.Name == "Margherita" && in.CategoryID == 1
				})).Return(&domain.Dish{ID: 1, Name: "Margherita"}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "unknown field",
			payload:      `{"name":"Margherita","restaurant_id":1}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "validation",
			payload: `{"name":"","price":10,"category_id":1}`,
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: name: required", domain.ErrValidation)).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			if testCase.prepareMocks != nil {
				testCase.prepareMocks(m)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/dishes", bytes.NewBufferString(testCase.payload))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, testCase.expectedCode, rr.Code)
		})
	}
}

func TestHandler_dishByID(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		prepareMocks func(handlerMocks)
		expectedCode int
	}{
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/api/dishes/3",
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("Get", mock.Anything, 3).Return(&domain.Dish{ID: 3}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid id",
			method:       http.MethodGet,
			path:         "/api/dishes/abc",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "not found",
			method: http.MethodGet,
			path:   "/api/dishes/4",
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("Get", mock.Anything, 4).Return(nil, fmt.Errorf("%w: dish 4", domain.ErrNotFound)).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "update",
			method: http.MethodPut,
			path:   "/api/dishes/3",
			body:   `{"price":12}`,
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("Update", mock.Anything, 3, mock.MatchedBy(func(p domain.DishPatch) bool {
					return p.Price != nil && *p.Price == 12 && p.Name == nil
				})).Return(&domain.Dish{ID: 3, Price: 12}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/api/dishes/3",
			prepareMocks: func(m handlerMocks) {
				m.dishes.On("Delete", mock.Anything, 3).Return(nil).Once()
			},
			expectedCode: http.StatusNoContent,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			if testCase.prepareMocks != nil {
				testCase.prepareMocks(m)
			}

			req := httptest.NewRequest(testCase.method, testCase.path, bytes.NewBufferString(testCase.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, testCase.expectedCode, rr.Code)
		})
	}
}

func TestHandler_categories(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		prepareMocks func(handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/categories",
			prepareMocks: func(m handlerMocks) {
				m.categories.On("List", mock.Anything).
					Return([]domain.Category{{ID: 1, Name: "Pizzas", Slug: "pizzas", Active: true}}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"slug":"pizzas"`,
		},
		{
			name:   "create conflict",
			method: http.MethodPost,
			path:   "/api/categories",
			body:   `{"name":"Pizzas"}`,
			prepareMocks: func(m handlerMocks) {
				m.categories.On("Create", mock.Anything, domain.CategoryInput{Name: "Pizzas"}).
					Return(nil, fmt.Errorf("%w: slug pizzas", domain.ErrConflict)).Once()
			},
			expectedCode: http.StatusConflict,
			expectedBody: "already exists",
		},
		{
			name:   "update",
			method: http.MethodPut,
			path:   "/api/categories/1",
			body:   `{"active":false}`,
			prepareMocks: func(m handlerMocks) {
				m.categories.On("Update", mock.Anything, 1, domain.CategoryPatch{Active: boolPtr(false)}).
					Return(&domain.Category{ID: 1, Active: false}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"active":false`,
		},
		{
			name:   "delete missing",
			method: http.MethodDelete,
			path:   "/api/categories/8",
			prepareMocks: func(m handlerMocks) {
				m.categories.On("Delete", mock.Anything, 8).
					Return(fmt.Errorf("%w: category 8", domain.ErrNotFound)).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "health",
			method:       http.MethodGet,
			path:         "/health",
			expectedCode: http.StatusOK,
			expectedBody: `"service":"catalog-svc"`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			if testCase.prepareMocks != nil {
				testCase.prepareMocks(m)
			}

			req := httptest.NewRequest(testCase.method, testCase.path, bytes.NewBufferString(testCase.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, testCase.expectedCode, rr.Code)
			assert.Contains(t, rr.Body.String(), testCase.expectedBody)
		})
	}
}

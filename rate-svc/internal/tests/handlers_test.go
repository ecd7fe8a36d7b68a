package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/api/http"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*mux.Router, *mocks.RatingServiceInterface) {
	t.Helper()
	svc := mocks.NewRatingServiceInterface(t)
	handler := httpapi.NewHandler(svc)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func TestHandler_createRating(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		prepareMocks func(*mocks.RatingServiceInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "success",
			payload: `{"user_id":"user-1","dish_id":1,"order_id":"ord-99","score":5,"comment":"Great!"}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, domain.SubmitRatingInput{
					UserID: "user-1", DishID: 1, OrderID: "ord-99", Score: 5, Comment: "Great!",
				}).Return(&domain.SubmitResult{
					Rating: domain.Rating{ID: 3, UserID: "user-1", DishID: 1, OrderID: "ord-99", Score: 5},
					Dish:   domain.DishSummary{DishID: 1, AverageRating: 4.5, TotalRatings: 2},
				}, nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"average_rating":4.5`,
		},
		{
			name:         "invalid json",
			payload:      `bad json`,
			prepareMocks: func(*mocks.RatingServiceInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "dish not in order",
			payload: `{"user_id":"user-1","dish_id":1,"order_id":"ord-99","score":3}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrDishNotInOrder).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "duplicate",
			payload: `{"user_id":"user-1","dish_id":1,"order_id":"ord-99","score":3}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateRating).Once()
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:    "unknown dish",
			payload: `{"user_id":"user-1","dish_id":404,"order_id":"ord-99","score":3}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: no rows", domain.ErrNotFound)).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "storage unavailable",
			payload: `{"user_id":"user-1","dish_id":1,"order_id":"ord-99","score":3}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrStorageUnavailable).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svc := setupTestRouter(t)
			testCase.prepareMocks(svc)

			req := httptest.NewRequest("POST", "/api/ratings", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_getDishRatings(t *testing.T) {
	router, svc := setupTestRouter(t)
	svc.On("ListDishRatings", mock.Anything, 1).
		Return([]domain.Rating{{ID: 1, DishID: 1, Score: 5}}, nil).Once()

	req := httptest.NewRequest("GET", "/api/dishes/1/ratings", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var ratings []domain.Rating
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &ratings))
	assert.Len(t, ratings, 1)

	req = httptest.NewRequest("GET", "/api/dishes/abc/ratings", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_createBulkRatings(t *testing.T) {
	tests := []struct {
		name            string
		payload         string
		prepareMocks    func(*mocks.RatingServiceInterface)
		expectedCode    int
		expectedCreated int
		expectedFailed  int
	}{
		{
			name:    "partial success",
			payload: `{"user_id":"user-1","order_id":"ord-99","ratings":[{"dish_id":1,"score":5},{"dish_id":2,"score":4}]}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.MatchedBy(func(in domain.SubmitRatingInput) bool { return in.DishID == 1 })).
					Return(&domain.SubmitResult{}, nil).Once()
				svc.On("Submit", mock.Anything, mock.MatchedBy(func(in domain.SubmitRatingInput) bool { return in.DishID == 2 })).
					Return(nil, domain.ErrDuplicateRating).Once()
			},
			expectedCode:    http.StatusCreated,
			expectedCreated: 1,
			expectedFailed:  1,
		},
		{
			name:    "all failed",
			payload: `{"user_id":"user-1","order_id":"ord-99","ratings":[{"dish_id":1,"score":5}]}`,
			prepareMocks: func(svc *mocks.RatingServiceInterface) {
				svc.On("Submit", mock.Anything, mock.Anything).Return(nil, domain.ErrDishNotInOrder).Once()
			},
			expectedCode:   http.StatusBadRequest,
			expectedFailed: 1,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svc := setupTestRouter(t)
			testCase.prepareMocks(svc)

			req := httptest.NewRequest("POST", "/api/ratings/bulk", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			var body struct {
				Created int `json:"created"`
				Failed  int `json:"failed"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, testCase.expectedCreated, body.Created)
			assert.Equal(t, testCase.expectedFailed, body.Failed)
		})
	}

	t.Run("missing ratings", func(t *testing.T) {
		router, _ := setupTestRouter(t)
		req := httptest.NewRequest("POST", "/api/ratings/bulk", bytes.NewBufferString(`{"user_id":"u","order_id":"o"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

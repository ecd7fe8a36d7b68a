package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/api/http"
	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/mocks"
	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*mux.Router, *mocks.AnalyticsInterface) {
	t.Helper()
	svc := mocks.NewAnalyticsInterface(t)
	handler := httpapi.NewHandler(svc, time.UTC)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func TestHandler_getDashboard(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		prepareMocks func(*mocks.AnalyticsInterface)
		expectedCode int
	}{
		{
			name:  "open window",
			query: "",
			prepareMocks: func(svc *mocks.AnalyticsInterface) {
				svc.On("Dashboard", mock.Anything, domain.Window{}).
					Return(service.ComputeDashboard(nil, domain.Window{}, now, time.UTC), nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:  "bounded window",
			query: "?start=2026-03-01&end=2026-03-14",
			prepareMocks: func(svc *mocks.AnalyticsInterface) {
				svc.On("Dashboard", mock.Anything, mock.MatchedBy(func(w domain.Window) bool {
					return w.Start != nil && w.End != nil && w.End.Day() == 14 && w.End.Hour() == 23
				})).Return(domain.DashboardStats{TotalOrders: 2}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "bad date",
			query:        "?start=last-week",
			prepareMocks: func(*mocks.AnalyticsInterface) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "storage unavailable",
			query: "",
			prepareMocks: func(svc *mocks.AnalyticsInterface) {
				svc.On("Dashboard", mock.Anything, domain.Window{}).
					Return(domain.DashboardStats{}, domain.ErrStorageUnavailable).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svc := setupTestRouter(t)
			testCase.prepareMocks(svc)

			req := httptest.NewRequest("GET", "/api/dashboard"+testCase.query, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_getDashboard_EmptyBody(t *testing.T) {
	router, svc := setupTestRouter(t)
	svc.On("Dashboard", mock.Anything, domain.Window{}).
		Return(service.ComputeDashboard(nil, domain.Window{}, now, time.UTC), nil).Once()

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		TotalOrders       int     `json:"total_orders"`
		AverageOrderValue float64 `json:"average_order_value"`
		OrdersByStatus    []any   `json:"orders_by_status"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 0, body.TotalOrders)
	assert.Equal(t, 0.0, body.AverageOrderValue)
	assert.Len(t, body.OrdersByStatus, 7)
}

func TestHandler_ratingDistribution(t *testing.T) {
	router, svc := setupTestRouter(t)
	svc.On("RatingDistribution", mock.Anything, 3).Return(domain.NewDistribution(), nil).Once()
	svc.On("GlobalDistribution", mock.Anything).Return(domain.NewDistribution(), nil).Once()

	for _, path := range []string{"/api/dishes/3/rating-distribution", "/api/analytics/rating-distribution"} {
		req := httptest.NewRequest("GET", path, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code, path)
		assert.JSONEq(t, `{"1":0,"2":0,"3":0,"4":0,"5":0}`, recorder.Body.String(), path)
	}

	req := httptest.NewRequest("GET", "/api/dishes/x/rating-distribution", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_topAndStats(t *testing.T) {
	router, svc := setupTestRouter(t)
	svc.On("TopToday", mock.Anything).
		Return([]domain.DishAnalytics{{DishID: 2, DishName: "Tiramisu", Score: 4}}, nil).Once()
	svc.On("TopAllTime", mock.Anything).Return([]domain.DishAnalytics{}, nil).Once()
	svc.On("DishStats", mock.Anything, 8).Return(nil, domain.ErrNotFound).Once()

	tests := []struct {
		path         string
		expectedCode int
		expectedBody string
	}{
		{path: "/api/analytics/top-today", expectedCode: http.StatusOK, expectedBody: `"dish_name":"Tiramisu"`},
		{path: "/api/analytics/top-alltime", expectedCode: http.StatusOK, expectedBody: `[]`},
		{path: "/api/dishes/8/stats", expectedCode: http.StatusNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", testCase.path, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

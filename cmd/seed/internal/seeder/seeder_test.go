package seeder

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu         sync.Mutex
	nextID     int
	categories []map[string]interface{}
	dishes     []map[string]interface{}
	couriers   []map[string]interface{}
	requestIDs []string
	failOn     string
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path == g.failOn {
		http.Error(w, `{"error":"boom"}`, http.StatusServiceUnavailable)
		return
	}
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	g.requestIDs = append(g.requestIDs, r.Header.Get(requestIDHeader))
	g.nextID++
	payload["id"] = g.nextID

	switch r.URL.Path {
	case "/api/categories":
		g.categories = append(g.categories, payload)
	case "/api/dishes":
		g.dishes = append(g.dishes, payload)
	case "/api/couriers":
		g.couriers = append(g.couriers, payload)
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payload)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeeder_Run(t *testing.T) {
	gw := &fakeGateway{}
	srv := httptest.NewServer(gw)
	defer srv.Close()

	s := New(srv.Client(), Options{
		Gateway:    srv.URL + "/",
		Categories: []string{"Mains", "Desserts"},
		Dishes:     5,
		Couriers:   2,
		Seed:       7,
	}, testLogger())

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Categories)
	assert.Equal(t, 5, res.Dishes)
	assert.Equal(t, 2, res.Couriers)
	assert.NotEmpty(t, res.RunID)

	require.Len(t, gw.categories, 2)
	assert.Equal(t, "Mains", gw.categories[0]["name"])
	categoryIDs := map[float64]bool{}
	for _, c := range gw.categories {
		categoryIDs[float64(c["id"].(int))] = true
	}

	for _, d := range gw.dishes {
		assert.True(t, categoryIDs[d["category_id"].(float64)], "dish points at a created category")
		price := d["price"].(float64)
		assert.GreaterOrEqual(t, price, 4.0)
		assert.LessOrEqual(t, price, 35.0)
		assert.NotEmpty(t, d["ingredients"])
	}
	for _, c := range gw.couriers {
		assert.Contains(t, vehicles, c["vehicle"])
		assert.NotEmpty(t, c["name"])
	}

	require.Len(t, gw.requestIDs, 9)
	for _, id := range gw.requestIDs {
		assert.True(t, strings.HasPrefix(id, res.RunID+"-"))
	}
}

func TestSeeder_SameSeedSameData(t *testing.T) {
	names := func() []string {
		gw := &fakeGateway{}
		srv := httptest.NewServer(gw)
		defer srv.Close()

		_, err := New(srv.Client(), Options{Gateway: srv.URL, Dishes: 4, Seed: 99}, testLogger()).
			Run(context.Background())
		require.NoError(t, err)

		out := make([]string, 0, len(gw.dishes))
		for _, d := range gw.dishes {
			out = append(out, d["name"].(string))
		}
		return out
	}

	first := names()
	assert.Len(t, first, 4)
	assert.Equal(t, first, names())
}

func TestSeeder_StopsOnFailure(t *testing.T) {
	tests := []struct {
		name           string
		failOn         string
		wantCategories int
		wantDishes     int
		wantErr        string
	}{
		{
			name:           "categories rejected",
			failOn:         "/api/categories",
			wantCategories: 0,
			wantErr:        "status 503",
		},
		{
			name:           "dishes rejected",
			failOn:         "/api/dishes",
			wantCategories: len(DefaultCategories),
			wantErr:        `dish 1: POST /api/dishes: status 503`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			gw := &fakeGateway{failOn: testCase.failOn}
			srv := httptest.NewServer(gw)
			defer srv.Close()

			res, err := New(srv.Client(), Options{Gateway: srv.URL, Dishes: 3, Couriers: 1}, testLogger()).
				Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.wantErr)
			assert.Equal(t, testCase.wantCategories, res.Categories)
			assert.Equal(t, testCase.wantDishes, res.Dishes)
			assert.Empty(t, gw.couriers)
		})
	}
}

package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/dishes/1":
			w.Write([]byte(`{"id":1,"name":"Margherita","price":10,"active":true,"slug":"margherita"}`))
		case "/api/dishes/3":
			w.Write([]byte(`{"id":3,"name":"Seasonal Soup","price":6,"active":false}`))
		case "/api/dishes/5":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := storage.NewCatalogClient(server.URL+"/", server.Client())

	dishes, err := client.Lookup(context.Background(), []int{1, 3, 9})
	require.NoError(t, err)
	assert.Len(t, dishes, 2)
	assert.Equal(t, domain.DishSnapshot{ID: 1, Name: "Margherita", Price: 10, Active: true}, dishes[1])
	assert.False(t, dishes[3].Active)

	_, err = client.Lookup(context.Background(), []int{5})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

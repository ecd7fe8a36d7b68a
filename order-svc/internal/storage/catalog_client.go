package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CatalogClient resolves dishes through catalog-svc. It is used when orders
// do not share a database with the catalog.
type CatalogClient struct {
	BaseURL string
	Client  HTTPClient
}

func NewCatalogClient(baseURL string, client HTTPClient) *CatalogClient {
	return &CatalogClient{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

type catalogDish struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

func (c *CatalogClient) Lookup(ctx context.Context, dishIDs []int) (map[int]domain.DishSnapshot, error) {
	dishes := make(map[int]domain.DishSnapshot, len(dishIDs))
	for _, id := range dishIDs {
		dish, found, err := c.fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			dishes[id] = dish
		}
	}
	return dishes, nil
}

func (c *CatalogClient) fetch(ctx context.Context, id int) (domain.DishSnapshot, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/dishes/"+strconv.Itoa(id), nil)
	if err != nil {
		return domain.DishSnapshot{}, false, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return domain.DishSnapshot{}, false, fmt.Errorf("%w: catalog: %v", domain.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.DishSnapshot{}, false, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return domain.DishSnapshot{}, false, fmt.Errorf("%w: catalog returned %d", domain.ErrStorageUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return domain.DishSnapshot{}, false, fmt.Errorf("catalog returned %d for dish %d", resp.StatusCode, id)
	}

	var dish catalogDish
	if err := json.NewDecoder(resp.Body).Decode(&dish); err != nil {
		return domain.DishSnapshot{}, false, fmt.Errorf("decode dish %d: %w", id, err)
	}
	return domain.DishSnapshot{ID: dish.ID, Name: dish.Name, Price: dish.Price, Active: dish.Active}, true, nil
}

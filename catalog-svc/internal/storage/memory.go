package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/domain"
)

// MemoryRepository backs the catalog when storage.driver is memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	categories map[int]domain.Category
	dishes     map[int]domain.Dish
	nextID     int
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		categories: make(map[int]domain.Category),
		dishes:     make(map[int]domain.Dish),
		nextID:     1,
		now:        time.Now,
	}
}

func (m *MemoryRepository) id() int {
	id := m.nextID
	m.nextID++
	return id
}

func copyDish(dish domain.Dish) domain.Dish {
	dish.Ingredients = append([]string{}, dish.Ingredients...)
	return dish
}

func (m *MemoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Slug == category.Slug {
			return fmt.Errorf("%w: category slug %q", domain.ErrConflict, category.Slug)
		}
	}
	category.ID = m.id()
	category.CreatedAt = m.now()
	m.categories[category.ID] = *category
	return nil
}

func (m *MemoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := []domain.Category{}
	for _, category := range m.categories {
		if activeOnly && !category.Active {
			continue
		}
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (m *MemoryRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	category, ok := m.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
	}
	return &category, nil
}

func (m *MemoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.categories[category.ID]
	if !ok {
		return fmt.Errorf("%w: category %d", domain.ErrNotFound, category.ID)
	}
	for id, other := range m.categories {
		if id != category.ID && other.Slug == category.Slug {
			return fmt.Errorf("%w: category slug %q", domain.ErrConflict, category.Slug)
		}
	}
	category.CreatedAt = existing.CreatedAt
	m.categories[category.ID] = *category
	return nil
}

func (m *MemoryRepository) DeactivateCategory(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	category, ok := m.categories[id]
	if !ok {
		return fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
	}
	category.Active = false
	m.categories[id] = category
	return nil
}

func (m *MemoryRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dish.ID = m.id()
	dish.CreatedAt = m.now()
	dish.UpdatedAt = dish.CreatedAt
	dish.AverageRating = 0
	dish.TotalRatings = 0
	m.dishes[dish.ID] = copyDish(*dish)
	return nil
}

func (m *MemoryRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dishes := make([]domain.Dish, 0, len(m.dishes))
	for _, dish := range m.dishes {
		dishes = append(dishes, copyDish(dish))
	}
	sort.Slice(dishes, func(i, j int) bool {
		if !dishes[i].CreatedAt.Equal(dishes[j].CreatedAt) {
			return dishes[i].CreatedAt.After(dishes[j].CreatedAt)
		}
		return dishes[i].ID > dishes[j].ID
	})
	return dishes, nil
}

func (m *MemoryRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dish, ok := m.dishes[id]
	if !ok {
		return nil, fmt.Errorf("%w: dish %d", domain.ErrNotFound, id)
	}
	c := copyDish(dish)
	return &c, nil
}

func (m *MemoryRepository) UpdateDish(ctx context.Context, dish *domain.Dish) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.dishes[dish.ID]
	if !ok {
		return fmt.Errorf("%w: dish %d", domain.ErrNotFound, dish.ID)
	}
	dish.AverageRating = existing.AverageRating
	dish.TotalRatings = existing.TotalRatings
	dish.CreatedAt = existing.CreatedAt
	dish.UpdatedAt = m.now()
	m.dishes[dish.ID] = copyDish(*dish)
	return nil
}

func (m *MemoryRepository) DeactivateDish(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dish, ok := m.dishes[id]
	if !ok {
		return fmt.Errorf("%w: dish %d", domain.ErrNotFound, id)
	}
	dish.Active = false
	dish.UpdatedAt = m.now()
	m.dishes[id] = dish
	return nil
}

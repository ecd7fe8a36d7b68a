package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/metrics"
	"github.com/Edgar-Klewert/restaurant-delivery/resilience"
	"github.com/Edgar-Klewert/restaurant-delivery/validation"

	"github.com/gosimple/slug"
)

const defaultPreparationTime = 15

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeactivateCategory(ctx context.Context, id int) error
}

type DishRepository interface {
	CreateDish(ctx context.Context, dish *domain.Dish) error
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	UpdateDish(ctx context.Context, dish *domain.Dish) error
	DeactivateDish(ctx context.Context, id int) error
}

type CategoryServiceInterface interface {
	Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int) (*domain.Category, error)
	Update(ctx context.Context, id int, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id int) error
}

type DishServiceInterface interface {
	Create(ctx context.Context, input domain.DishInput) (*domain.Dish, error)
	List(ctx context.Context, filter domain.DishFilter) ([]domain.Dish, error)
	Get(ctx context.Context, id int) (*domain.Dish, error)
	Update(ctx context.Context, id int, patch domain.DishPatch) (*domain.Dish, error)
	Delete(ctx context.Context, id int) error
}

type Options struct {
	Policy  resilience.Policy
	Metrics *metrics.Metrics
}

func (o Options) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return o.Policy.Do(ctx, domain.ErrStorageUnavailable, fn)
}

// once runs an insert that allocates a serial id; a replay would duplicate it.
func (o Options) once(ctx context.Context, fn func(ctx context.Context) error) error {
	return o.Policy.DoOnce(ctx, domain.ErrStorageUnavailable, fn)
}

type CategoryService struct {
	repo CategoryRepository
	opts Options
}

func NewCategoryService(repo CategoryRepository, opts Options) *CategoryService {
	return &CategoryService{repo: repo, opts: opts}
}

func (s *CategoryService) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category := &domain.Category{
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Active:      input.Active == nil || *input.Active,
	}
	if err := s.opts.once(ctx, func(ctx context.Context) error {
		return s.repo.CreateCategory(ctx, category)
	}); err != nil {
		return nil, err
	}

	s.opts.Metrics.IncEvent("category_created")
	logger.WithCtx(ctx).Info("category created", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

// List returns active categories only.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.opts.do(ctx, func(ctx context.Context) error {
		var err error
		categories, err = s.repo.ListCategories(ctx, true)
		return err
	})
	return categories, err
}

func (s *CategoryService) Get(ctx context.Context, id int) (*domain.Category, error) {
	var category *domain.Category
	err := s.opts.do(ctx, func(ctx context.Context) error {
		var err error
		category, err = s.repo.GetCategory(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id int, patch domain.CategoryPatch) (*domain.Category, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name: required", domain.ErrValidation)
		}
		category.Name = name
		category.Slug = slug.Make(name)
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		category.ImageURL = *patch.ImageURL
	}
	if patch.Active != nil {
		category.Active = *patch.Active
	}

	if err := s.opts.do(ctx, func(ctx context.Context) error {
		return s.repo.UpdateCategory(ctx, category)
	}); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete is a soft delete: the category stays readable by id.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if err := s.opts.do(ctx, func(ctx context.Context) error {
		return s.repo.DeactivateCategory(ctx, id)
	}); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("category deactivated", "category_id", id)
	return nil
}

var _ CategoryServiceInterface = (*CategoryService)(nil)

type DishService struct {
	repo       DishRepository
	categories CategoryRepository
	opts       Options
}

func NewDishService(repo DishRepository, categories CategoryRepository, opts Options) *DishService {
	return &DishService{repo: repo, categories: categories, opts: opts}
}

func (s *DishService) Create(ctx context.Context, input domain.DishInput) (*domain.Dish, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	prep := input.PreparationTime
	if prep == 0 {
		prep = defaultPreparationTime
	}
	dish := &domain.Dish{
		Name:            input.Name,
		Slug:            slug.Make(input.Name),
		Description:     input.Description,
		Price:           input.Price,
		ImageURL:        input.ImageURL,
		CategoryID:      input.CategoryID,
		Active:          input.Active == nil || *input.Active,
		PreparationTime: prep,
		Ingredients:     cleanIngredients(input.Ingredients),
	}
	if err := s.opts.once(ctx, func(ctx context.Context) error {
		return s.repo.CreateDish(ctx, dish)
	}); err != nil {
		return nil, err
	}

	s.opts.Metrics.IncEvent("dish_created")
	logger.WithCtx(ctx).Info("dish created", "dish_id", dish.ID, "category_id", dish.CategoryID)
	return dish, nil
}

func (s *DishService) checkCategory(ctx context.Context, id int) error {
	err := s.opts.do(ctx, func(ctx context.Context) error {
		_, err := s.categories.GetCategory(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown category %d", domain.ErrValidation, id)
		}
		return err
	}
	return nil
}

// List loads the whole menu and filters it in process.
func (s *DishService) List(ctx context.Context, filter domain.DishFilter) ([]domain.Dish, error) {
	var dishes []domain.Dish
	if err := s.opts.do(ctx, func(ctx context.Context) error {
		var err error
		dishes, err = s.repo.ListDishes(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	return domain.ApplyFilter(dishes, filter), nil
}

// Get returns inactive dishes too.
func (s *DishService) Get(ctx context.Context, id int) (*domain.Dish, error) {
	var dish *domain.Dish
	err := s.opts.do(ctx, func(ctx context.Context) error {
		var err error
		dish, err = s.repo.GetDish(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *DishService) Update(ctx context.Context, id int, patch domain.DishPatch) (*domain.Dish, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	dish, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name: required", domain.ErrValidation)
		}
		dish.Name = name
		dish.Slug = slug.Make(name)
	}
	if patch.Description != nil {
		dish.Description = *patch.Description
	}
	if patch.Price != nil {
		dish.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		dish.ImageURL = *patch.ImageURL
	}
	if patch.CategoryID != nil && *patch.CategoryID != dish.CategoryID {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		dish.CategoryID = *patch.CategoryID
	}
	if patch.Active != nil {
		dish.Active = *patch.Active
	}
	if patch.PreparationTime != nil {
		dish.PreparationTime = *patch.PreparationTime
	}
	if patch.Ingredients != nil {
		dish.Ingredients = cleanIngredients(*patch.Ingredients)
	}

	if err := s.opts.do(ctx, func(ctx context.Context) error {
		return s.repo.UpdateDish(ctx, dish)
	}); err != nil {
		return nil, err
	}
	return dish, nil
}

// Delete is a soft delete: the dish disappears from listings only.
func (s *DishService) Delete(ctx context.Context, id int) error {
	if err := s.opts.do(ctx, func(ctx context.Context) error {
		return s.repo.DeactivateDish(ctx, id)
	}); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("dish deactivated", "dish_id", id)
	return nil
}

var _ DishServiceInterface = (*DishService)(nil)

func cleanIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, ingredient := range raw {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

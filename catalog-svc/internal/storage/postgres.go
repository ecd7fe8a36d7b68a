package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Edgar-Klewert/restaurant-delivery/catalog-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/pgutil"

	"github.com/lib/pq"
)

const dishColumns = `id, name, slug, COALESCE(description, ''), price, COALESCE(image_url, ''), category_id,
	active, preparation_time, ingredients, avg_rating, review_count, created_at, updated_at`

const categoryColumns = `id, name, slug, COALESCE(description, ''), COALESCE(image_url, ''), active, created_at`

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	switch pgutil.Classify(err) {
	case pgutil.KindNotFound:
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case pgutil.KindUniqueViolation:
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case pgutil.KindSerialization, pgutil.KindUnavailable:
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(&category.ID, &category.Name, &category.Slug, &category.Description,
		&category.ImageURL, &category.Active, &category.CreatedAt); err != nil {
		return nil, err
	}
	return &category, nil
}

func scanDish(row scanner) (*domain.Dish, error) {
	var (
		dish        domain.Dish
		ingredients pq.StringArray
	)
	if err := row.Scan(&dish.ID, &dish.Name, &dish.Slug, &dish.Description, &dish.Price, &dish.ImageURL,
		&dish.CategoryID, &dish.Active, &dish.PreparationTime, &ingredients, &dish.AverageRating,
		&dish.TotalRatings, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
		return nil, err
	}
	dish.Ingredients = []string(ingredients)
	if dish.Ingredients == nil {
		dish.Ingredients = []string{}
	}
	return &dish, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return translate(r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (name, slug, description, image_url, active) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		category.Name, category.Slug, category.Description, category.ImageURL, category.Active,
	).Scan(&category.ID, &category.CreatedAt))
}

func (r *PostgresRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, translate(err)
		}
		categories = append(categories, *category)
	}
	return categories, translate(rows.Err())
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	category, err := scanCategory(r.DB.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return category, nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE categories SET name=$1, slug=$2, description=$3, image_url=$4, active=$5 WHERE id=$6",
		category.Name, category.Slug, category.Description, category.ImageURL, category.Active, category.ID)
	return affected(result, err, "category", category.ID)
}

func (r *PostgresRepository) DeactivateCategory(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE categories SET active = FALSE WHERE id = $1", id)
	return affected(result, err, "category", id)
}

func affected(result sql.Result, err error, kind string, id int) error {
	if err != nil {
		return translate(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, kind, id)
	}
	return nil
}

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	return translate(r.DB.QueryRowContext(ctx, `
		INSERT INTO dishes (name, slug, description, price, image_url, category_id, active, preparation_time, ingredients)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, avg_rating, review_count, created_at, updated_at`,
		dish.Name, dish.Slug, dish.Description, dish.Price, dish.ImageURL, dish.CategoryID, dish.Active,
		dish.PreparationTime, pq.Array(dish.Ingredients),
	).Scan(&dish.ID, &dish.AverageRating, &dish.TotalRatings, &dish.CreatedAt, &dish.UpdatedAt))
}

func (r *PostgresRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+dishColumns+` FROM dishes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			return nil, translate(err)
		}
		dishes = append(dishes, *dish)
	}
	return dishes, translate(rows.Err())
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	dish, err := scanDish(r.DB.QueryRowContext(ctx, `SELECT `+dishColumns+` FROM dishes WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return dish, nil
}

// UpdateDish never writes the rating summary; it reads the current one back.
func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *domain.Dish) error {
	return translate(r.DB.QueryRowContext(ctx, `
		UPDATE dishes
		SET name=$1, slug=$2, description=$3, price=$4, image_url=$5, category_id=$6, active=$7,
			preparation_time=$8, ingredients=$9, updated_at=NOW()
		WHERE id=$10
		RETURNING avg_rating, review_count, updated_at`,
		dish.Name, dish.Slug, dish.Description, dish.Price, dish.ImageURL, dish.CategoryID, dish.Active,
		dish.PreparationTime, pq.Array(dish.Ingredients), dish.ID,
	).Scan(&dish.AverageRating, &dish.TotalRatings, &dish.UpdatedAt))
}

func (r *PostgresRepository) DeactivateDish(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE dishes SET active = FALSE, updated_at = NOW() WHERE id = $1", id)
	return affected(result, err, "dish", id)
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT,
			image_url TEXT,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
			image_url TEXT,
			category_id INT NOT NULL REFERENCES categories(id),
			active BOOLEAN NOT NULL DEFAULT TRUE,
			preparation_time INT NOT NULL DEFAULT 15,
			ingredients TEXT[] NOT NULL DEFAULT '{}',
			avg_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dishes_category_id ON dishes (category_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

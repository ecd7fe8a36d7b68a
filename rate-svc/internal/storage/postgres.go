package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Edgar-Klewert/restaurant-delivery/pgutil"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/domain"
)

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
		return domain.ErrDuplicateRating
	case pgutil.KindSerialization, pgutil.KindUnavailable:
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}

func (r *PostgresRepository) DishInOrder(ctx context.Context, dishID int, orderID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM order_items
			WHERE dish_id = $1 AND order_id = $2
		)
	`, dishID, orderID).Scan(&exists)
	return exists, translate(err)
}

// Append locks the dish row so concurrent ratings of one dish recompute the
// summary one after another.
func (r *PostgresRepository) Append(ctx context.Context, rating *domain.Rating) (domain.DishSummary, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.DishSummary{}, translate(err)
	}
	defer tx.Rollback()

	var locked int
	if err := tx.QueryRowContext(ctx, `SELECT id FROM dishes WHERE id = $1 FOR UPDATE`, rating.DishID).
		Scan(&locked); err != nil {
		return domain.DishSummary{}, translate(err)
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO ratings (user_id, dish_id, order_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rating.UserID, rating.DishID, rating.OrderID, rating.Score, rating.Comment).
		Scan(&rating.ID, &rating.CreatedAt); err != nil {
		return domain.DishSummary{}, translate(err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT score FROM ratings WHERE dish_id = $1`, rating.DishID)
	if err != nil {
		return domain.DishSummary{}, translate(err)
	}
	var scores []int
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			rows.Close()
			return domain.DishSummary{}, translate(err)
		}
		scores = append(scores, score)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return domain.DishSummary{}, translate(err)
	}

	summary := domain.Summarize(rating.DishID, scores)
	if _, err := tx.ExecContext(ctx, `
		UPDATE dishes SET avg_rating = $1, review_count = $2 WHERE id = $3
	`, summary.AverageRating, summary.TotalRatings, rating.DishID); err != nil {
		return domain.DishSummary{}, translate(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.DishSummary{}, translate(err)
	}
	return summary, nil
}

func (r *PostgresRepository) ListByDish(ctx context.Context, dishID int) ([]domain.Rating, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, dish_id, order_id, score, COALESCE(comment, ''), created_at
		FROM ratings
		WHERE dish_id = $1
		ORDER BY created_at DESC, id DESC
	`, dishID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.ID, &rating.UserID, &rating.DishID, &rating.OrderID, &rating.Score,
			&rating.Comment, &rating.CreatedAt); err != nil {
			return nil, translate(err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, translate(rows.Err())
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ratings (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			dish_id INT NOT NULL,
			order_id TEXT NOT NULL,
			score INT NOT NULL CHECK (score BETWEEN 1 AND 5),
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, dish_id, order_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_dish_id ON ratings (dish_id)`,
		"ALTER TABLE IF EXISTS dishes ADD COLUMN IF NOT EXISTS avg_rating DOUBLE PRECISION NOT NULL DEFAULT 0",
		"ALTER TABLE IF EXISTS dishes ALTER COLUMN avg_rating TYPE DOUBLE PRECISION",
		"ALTER TABLE IF EXISTS dishes ADD COLUMN IF NOT EXISTS review_count INT NOT NULL DEFAULT 0",
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

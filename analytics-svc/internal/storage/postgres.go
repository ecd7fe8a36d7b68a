package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
	"github.com/Edgar-Klewert/restaurant-delivery/pgutil"

	"github.com/lib/pq"
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
	case pgutil.KindSerialization, pgutil.KindUnavailable:
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}

// Snapshot reads orders and their items inside one read-only REPEATABLE READ
// transaction, so a concurrent transition is seen either fully or not at all.
func (r *PostgresRepository) Snapshot(ctx context.Context, window domain.Window) ([]domain.OrderRecord, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, translate(err)
	}
	defer tx.Rollback()

	query := "SELECT id, client_id, status, total, created_at FROM orders"
	var conditions []string
	var args []any
	if window.Start != nil {
		args = append(args, *window.Start)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if window.End != nil {
		args = append(args, *window.End)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	var orders []domain.OrderRecord
	index := make(map[string]int)
	for rows.Next() {
		var order domain.OrderRecord
		var status string
		if err := rows.Scan(&order.ID, &order.ClientID, &status, &order.Total, &order.CreatedAt); err != nil {
			rows.Close()
			return nil, translate(err)
		}
		order.Status = lifecycle.Status(status)
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	if len(orders) == 0 {
		return []domain.OrderRecord{}, translate(tx.Commit())
	}

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	itemRows, err := tx.QueryContext(ctx, `
		SELECT order_id, dish_id, dish_name, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		return nil, translate(err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var line domain.OrderLine
		if err := itemRows.Scan(&orderID, &line.DishID, &line.DishName, &line.Quantity); err != nil {
			return nil, translate(err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, line)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, translate(err)
	}
	return orders, translate(tx.Commit())
}

func (r *PostgresRepository) TopOrderedBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.DishAnalytics, error) {
	return r.queryTop(ctx, `
		SELECT oi.dish_id, MAX(oi.dish_name), SUM(oi.quantity)::float8 AS score, 0
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY oi.dish_id
		ORDER BY score DESC, oi.dish_id
		LIMIT $3
	`, from, to, limit)
}

func (r *PostgresRepository) TopRated(ctx context.Context, limit int) ([]domain.DishAnalytics, error) {
	return r.queryTop(ctx, `
		SELECT id, name, avg_rating::float8, review_count
		FROM dishes
		WHERE review_count > 0
		ORDER BY avg_rating DESC, review_count DESC, id
		LIMIT $1
	`, limit)
}

func (r *PostgresRepository) queryTop(ctx context.Context, query string, args ...any) ([]domain.DishAnalytics, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	top := []domain.DishAnalytics{}
	for rows.Next() {
		var d domain.DishAnalytics
		if err := rows.Scan(&d.DishID, &d.DishName, &d.Score, &d.ReviewCount); err != nil {
			return nil, translate(err)
		}
		top = append(top, d)
	}
	return top, translate(rows.Err())
}

func (r *PostgresRepository) DishNames(ctx context.Context, dishIDs []int) (map[int]string, error) {
	names := make(map[int]string, len(dishIDs))
	if len(dishIDs) == 0 {
		return names, nil
	}
	ids := make([]int64, 0, len(dishIDs))
	for _, id := range dishIDs {
		ids = append(ids, int64(id))
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM dishes WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, translate(err)
		}
		names[id] = name
	}
	return names, translate(rows.Err())
}

func (r *PostgresRepository) RatingDistribution(ctx context.Context, dishID int) (domain.Distribution, error) {
	return r.distribution(ctx, `
		SELECT score, COUNT(*) FROM ratings
		WHERE dish_id = $1
		GROUP BY score
	`, dishID)
}

func (r *PostgresRepository) GlobalDistribution(ctx context.Context) (domain.Distribution, error) {
	return r.distribution(ctx, `SELECT score, COUNT(*) FROM ratings GROUP BY score`)
}

func (r *PostgresRepository) distribution(ctx context.Context, query string, args ...any) (domain.Distribution, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	dist := domain.NewDistribution()
	for rows.Next() {
		var score, count int
		if err := rows.Scan(&score, &count); err != nil {
			return nil, translate(err)
		}
		dist.Add(score, count)
	}
	return dist, translate(rows.Err())
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/pgutil"

	"github.com/lib/pq"
)

const orderColumns = `id, client_id, status, type, total, delivery_fee, address, phone, note,
	estimated_minutes, delivery_person_id, created_at, updated_at`

type PostgresOrderRepository struct {
	DB *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

type PostgresCourierRepository struct {
	DB *sql.DB
}

func NewPostgresCourierRepository(db *sql.DB) *PostgresCourierRepository {
	return &PostgresCourierRepository{DB: db}
}

// PostgresDishCatalog reads dish snapshots from the catalog's dishes table.
type PostgresDishCatalog struct {
	DB *sql.DB
}

func NewPostgresDishCatalog(db *sql.DB) *PostgresDishCatalog {
	return &PostgresDishCatalog{DB: db}
}

// translate maps driver errors onto the service's sentinel errors.
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

func scanOrder(row scanner) (*domain.Order, error) {
	var (
		order            domain.Order
		status, kind     string
		address, note    sql.NullString
		deliveryPersonID sql.NullInt64
	)
	if err := row.Scan(&order.ID, &order.ClientID, &status, &kind, &order.Total, &order.DeliveryFee,
		&address, &order.Phone, &note, &order.EstimatedMinutes, &deliveryPersonID,
		&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	order.Status = lifecycle.Status(status)
	order.Type = domain.OrderType(kind)
	if address.Valid {
		order.Address = &address.String
	}
	if note.Valid {
		order.Note = &note.String
	}
	if deliveryPersonID.Valid {
		id := int(deliveryPersonID.Int64)
		order.DeliveryPersonID = &id
	}
	order.Items = []domain.OrderItem{}
	return &order, nil
}

func (r *PostgresOrderRepository) Insert(ctx context.Context, order *domain.Order, change domain.StatusChange) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return translate(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`, order.ID, order.ClientID, string(order.Status), string(order.Type), order.Total, order.DeliveryFee,
		order.Address, order.Phone, order.Note, order.EstimatedMinutes, order.DeliveryPersonID,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if inserted == 0 {
		var replay bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1 AND client_id = $2 AND created_at = $3)
		`, order.ID, order.ClientID, order.CreatedAt).Scan(&replay); err != nil {
			return translate(err)
		}
		if replay {
			return nil
		}
		return fmt.Errorf("%w: order %s already exists", domain.ErrConflict, order.ID)
	}

	for position, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, dish_id, dish_name, quantity, price, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, order.ID, position, item.DishID, item.DishName, item.Quantity, item.Price, item.Note); err != nil {
			return translate(err)
		}
	}

	if err := insertHistory(ctx, tx, change); err != nil {
		return err
	}

	return translate(tx.Commit())
}

func insertHistory(ctx context.Context, tx *sql.Tx, change domain.StatusChange) error {
	var from *string
	if change.From != "" {
		f := string(change.From)
		from = &f
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, from_status, to_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, change.OrderID, from, string(change.To), string(change.ChangedBy), change.ChangedAt)
	return translate(err)
}

func (r *PostgresOrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err != nil {
		return nil, translate(err)
	}
	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresOrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conditions = append(conditions, "client_id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return r.queryOrders(ctx, query, args...)
}

func (r *PostgresOrderRepository) ListActive(ctx context.Context) ([]domain.Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status NOT IN ('delivered', 'cancelled')
		ORDER BY created_at ASC, id ASC`)
}

func (r *PostgresOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, translate(err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	result := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *PostgresOrderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, dish_id, dish_name, quantity, price, note
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			item    domain.OrderItem
			note    sql.NullString
		)
		if err := rows.Scan(&orderID, &item.DishID, &item.DishName, &item.Quantity, &item.Price, &note); err != nil {
			return translate(err)
		}
		if note.Valid {
			item.Note = &note.String
		}
		if order, ok := byID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return translate(rows.Err())
}

func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, change domain.StatusChange) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return translate(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`, string(change.To), change.ChangedAt, change.OrderID, string(change.From))
	if err != nil {
		return translate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if affected == 0 {
		var recorded bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM order_status_history
				WHERE order_id = $1 AND to_status = $2 AND changed_by = $3 AND changed_at = $4
			)
		`, change.OrderID, string(change.To), string(change.ChangedBy), change.ChangedAt).Scan(&recorded); err != nil {
			return translate(err)
		}
		if recorded {
			return nil
		}
		return fmt.Errorf("%w: order %s is no longer %s", domain.ErrConflict, change.OrderID, change.From)
	}

	if err := insertHistory(ctx, tx, change); err != nil {
		return err
	}

	if change.To.IsTerminal() {
		if _, err := tx.ExecContext(ctx, `DELETE FROM courier_orders WHERE order_id = $1`, change.OrderID); err != nil {
			return translate(err)
		}
	}

	return translate(tx.Commit())
}

func (r *PostgresOrderRepository) History(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, COALESCE(from_status, ''), to_status, changed_by, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	history := []domain.StatusChange{}
	for rows.Next() {
		var change domain.StatusChange
		var from, to, by string
		if err := rows.Scan(&change.OrderID, &from, &to, &by, &change.ChangedAt); err != nil {
			return nil, translate(err)
		}
		change.From = lifecycle.Status(from)
		change.To = lifecycle.Status(to)
		change.ChangedBy = lifecycle.Role(by)
		history = append(history, change)
	}
	return history, translate(rows.Err())
}

func (r *PostgresCourierRepository) Create(ctx context.Context, courier *domain.Courier) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO couriers (name, phone, vehicle, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, courier.Name, courier.Phone, courier.Vehicle, courier.Active).Scan(&courier.ID, &courier.CreatedAt)
	if err != nil {
		return translate(err)
	}
	courier.CurrentOrders = []string{}
	return nil
}

func (r *PostgresCourierRepository) Update(ctx context.Context, courier *domain.Courier) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE couriers SET name = $1, phone = $2, vehicle = $3, active = $4
		WHERE id = $5
		RETURNING created_at
	`, courier.Name, courier.Phone, courier.Vehicle, courier.Active, courier.ID).Scan(&courier.CreatedAt)
	if err != nil {
		return translate(err)
	}
	orders, err := r.currentOrders(ctx, courier.ID)
	if err != nil {
		return err
	}
	courier.CurrentOrders = orders
	return nil
}

func (r *PostgresCourierRepository) Get(ctx context.Context, id int) (*domain.Courier, error) {
	var courier domain.Courier
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, phone, COALESCE(vehicle, ''), active, created_at
		FROM couriers WHERE id = $1
	`, id).Scan(&courier.ID, &courier.Name, &courier.Phone, &courier.Vehicle, &courier.Active, &courier.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	orders, err := r.currentOrders(ctx, id)
	if err != nil {
		return nil, err
	}
	courier.CurrentOrders = orders
	return &courier, nil
}

func (r *PostgresCourierRepository) currentOrders(ctx context.Context, courierID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id FROM courier_orders WHERE courier_id = $1 ORDER BY assigned_at ASC
	`, courierID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	orders := []string{}
	for rows.Next() {
		var orderID string
		if err := rows.Scan(&orderID); err != nil {
			return nil, translate(err)
		}
		orders = append(orders, orderID)
	}
	return orders, translate(rows.Err())
}

func (r *PostgresCourierRepository) List(ctx context.Context, activeOnly bool) ([]domain.Courier, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.name, c.phone, COALESCE(c.vehicle, ''), c.active, c.created_at,
			COALESCE(array_agg(co.order_id ORDER BY co.assigned_at) FILTER (WHERE co.order_id IS NOT NULL), '{}')
		FROM couriers c
		LEFT JOIN courier_orders co ON co.courier_id = c.id
		WHERE c.active OR NOT $1
		GROUP BY c.id
		ORDER BY c.id
	`, activeOnly)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	couriers := []domain.Courier{}
	for rows.Next() {
		var courier domain.Courier
		var orders pq.StringArray
		if err := rows.Scan(&courier.ID, &courier.Name, &courier.Phone, &courier.Vehicle, &courier.Active,
			&courier.CreatedAt, &orders); err != nil {
			return nil, translate(err)
		}
		courier.CurrentOrders = append([]string{}, orders...)
		couriers = append(couriers, courier)
	}
	return couriers, translate(rows.Err())
}

func (r *PostgresCourierRepository) Assign(ctx context.Context, orderID string, courierID int, at time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return translate(err)
	}
	defer tx.Rollback()

	var active bool
	if err := tx.QueryRowContext(ctx, `SELECT active FROM couriers WHERE id = $1 FOR UPDATE`, courierID).
		Scan(&active); err != nil {
		return translate(err)
	}
	if !active {
		return fmt.Errorf("%w: courier %d", domain.ErrInactiveCourier, courierID)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE orders SET delivery_person_id = $1, updated_at = $2
		WHERE id = $3 AND type = 'delivery' AND status NOT IN ('delivered', 'cancelled')
	`, courierID, at, orderID)
	if err != nil {
		return translate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: order %s can no longer be assigned", domain.ErrConflict, orderID)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO courier_orders (order_id, courier_id, assigned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id) DO UPDATE SET courier_id = EXCLUDED.courier_id, assigned_at = EXCLUDED.assigned_at
	`, orderID, courierID, at); err != nil {
		return translate(err)
	}

	return translate(tx.Commit())
}

func (r *PostgresDishCatalog) Lookup(ctx context.Context, dishIDs []int) (map[int]domain.DishSnapshot, error) {
	dishes := make(map[int]domain.DishSnapshot, len(dishIDs))
	if len(dishIDs) == 0 {
		return dishes, nil
	}

	ids := make([]int64, 0, len(dishIDs))
	for _, id := range dishIDs {
		ids = append(ids, int64(id))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, price, active FROM dishes WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	for rows.Next() {
		var dish domain.DishSnapshot
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Active); err != nil {
			return nil, translate(err)
		}
		dishes[dish.ID] = dish
	}
	return dishes, translate(rows.Err())
}

func (r *PostgresOrderRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			client_id TEXT NOT NULL,
			status TEXT NOT NULL,
			type TEXT NOT NULL,
			total NUMERIC(10, 2) NOT NULL,
			delivery_fee NUMERIC(10, 2) NOT NULL DEFAULT 0,
			address TEXT,
			phone TEXT NOT NULL,
			note TEXT,
			estimated_minutes INT NOT NULL,
			delivery_person_id INT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders (client_id)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(id),
			position INT NOT NULL,
			dish_id INT NOT NULL,
			dish_name TEXT NOT NULL,
			quantity INT NOT NULL CHECK (quantity >= 1),
			price NUMERIC(10, 2) NOT NULL,
			note TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_status_history (
			id BIGSERIAL PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(id),
			from_status TEXT,
			to_status TEXT NOT NULL,
			changed_by TEXT NOT NULL,
			changed_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS couriers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			vehicle TEXT,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS courier_orders (
			order_id TEXT PRIMARY KEY REFERENCES orders(id),
			courier_id INT NOT NULL REFERENCES couriers(id),
			assigned_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

package tests

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/order-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "client_id", "status", "type", "total", "delivery_fee", "address", "phone", "note",
	"estimated_minutes", "delivery_person_id", "created_at", "updated_at",
}

func setupSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:       "order-1",
		ClientID: "client-1",
		Items: []domain.OrderItem{
			{DishID: 1, DishName: "Margherita", Quantity: 2, Price: 10},
			{DishID: 2, DishName: "Garlic Bread", Quantity: 1, Price: 5},
		},
		Status:           lifecycle.StatusPending,
		Type:             domain.OrderTypeDelivery,
		Total:            30,
		DeliveryFee:      5,
		Address:          strPtr("12 Baker Street"),
		Phone:            "+1 555 0100",
		EstimatedMinutes: 45,
		CreatedAt:        fixedNow,
		UpdatedAt:        fixedNow,
	}
}

func TestPostgresOrderRepository_Insert(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := storage.NewPostgresOrderRepository(db)
	order := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs("order-1", "client-1", "pending", "delivery", 30.0, 5.0, "12 Baker Street", "+1 555 0100",
			nil, 45, nil, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("order-1", 0, 1, "Margherita", 2, 10.0, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("order-1", 1, 2, "Garlic Bread", 1, 5.0, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO order_status_history").
		WithArgs("order-1", nil, "pending", "client", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Insert(context.Background(), order, domain.StatusChange{
		OrderID: "order-1", To: lifecycle.StatusPending, ChangedBy: lifecycle.RoleClient, ChangedAt: fixedNow,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderRepository_InsertExistingID(t *testing.T) {
	tests := []struct {
		name          string
		sameOrder     bool
		expectedError error
	}{
		{name: "replay of a committed insert", sameOrder: true},
		{name: "id taken by another order", sameOrder: false, expectedError: domain.ErrConflict},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock := setupSQLMock(t)
			repo := storage.NewPostgresOrderRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery("SELECT EXISTS").
				WithArgs("order-1", "client-1", fixedNow).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(testCase.sameOrder))
			mock.ExpectRollback()

			err := repo.Insert(context.Background(), sampleOrder(), domain.StatusChange{OrderID: "order-1", To: lifecycle.StatusPending})
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresOrderRepository_InsertErrors(t *testing.T) {
	tests := []struct {
		name          string
		driverErr     error
		expectedError error
	}{
		{name: "duplicate id", driverErr: &pq.Error{Code: "23505"}, expectedError: domain.ErrConflict},
		{name: "serialization failure", driverErr: &pq.Error{Code: "40001"}, expectedError: domain.ErrStorageUnavailable},
		{name: "admin shutdown", driverErr: &pq.Error{Code: "57P01"}, expectedError: domain.ErrStorageUnavailable},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock := setupSQLMock(t)
			repo := storage.NewPostgresOrderRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO orders").WillReturnError(testCase.driverErr)
			mock.ExpectRollback()

			err := repo.Insert(context.Background(), sampleOrder(), domain.StatusChange{OrderID: "order-1", To: lifecycle.StatusPending})
			assert.ErrorIs(t, err, testCase.expectedError)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresOrderRepository_Get(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := storage.NewPostgresOrderRepository(db)

	mock.ExpectQuery(`FROM orders WHERE id = \$1`).
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).AddRow(
			"order-1", "client-1", "ready", "delivery", 30.0, 5.0, "12 Baker Street", "+1 555 0100", nil,
			45, int64(7), fixedNow, fixedNow.Add(time.Minute)))
	mock.ExpectQuery("FROM order_items").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "dish_id", "dish_name", "quantity", "price", "note"}).
			AddRow("order-1", 1, "Margherita", 2, 10.0, nil).
			AddRow("order-1", 2, "Garlic Bread", 1, 5.0, "no garlic"))

	order, err := repo.Get(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusReady, order.Status)
	assert.Equal(t, "12 Baker Street", *order.Address)
	assert.Nil(t, order.Note)
	assert.Equal(t, 7, *order.DeliveryPersonID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "no garlic", *order.Items[1].Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderRepository_GetNotFound(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := storage.NewPostgresOrderRepository(db)

	mock.ExpectQuery(`FROM orders WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresOrderRepository_ListFilters(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := storage.NewPostgresOrderRepository(db)
	status := lifecycle.StatusConfirmed

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1 AND client_id = $2 ORDER BY created_at DESC, id DESC`)).
		WithArgs("confirmed", "client-1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	orders, err := repo.List(context.Background(), domain.OrderFilter{Status: &status, ClientID: "client-1"})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresOrderRepository_UpdateStatus(t *testing.T) {
	change := domain.StatusChange{
		OrderID:   "order-1",
		From:      lifecycle.StatusPending,
		To:        lifecycle.StatusConfirmed,
		ChangedBy: lifecycle.RoleKitchen,
		ChangedAt: fixedNow,
	}

	t.Run("applied", func(t *testing.T) {
		db, mock := setupSQLMock(t)
		repo := storage.NewPostgresOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs("confirmed", fixedNow, "order-1", "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_status_history").
			WithArgs("order-1", "pending", "confirmed", "kitchen", fixedNow).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.UpdateStatus(context.Background(), change))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale status", func(t *testing.T) {
		db, mock := setupSQLMock(t)
		repo := storage.NewPostgresOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET status").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("order-1", "confirmed", "kitchen", fixedNow).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err := repo.UpdateStatus(context.Background(), change)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay of a committed change", func(t *testing.T) {
		db, mock := setupSQLMock(t)
		repo := storage.NewPostgresOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET status").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("order-1", "confirmed", "kitchen", fixedNow).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		require.NoError(t, repo.UpdateStatus(context.Background(), change))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("terminal releases courier", func(t *testing.T) {
		db, mock := setupSQLMock(t)
		repo := storage.NewPostgresOrderRepository(db)
		delivered := change
		delivered.From = lifecycle.StatusOutForDelivery
		delivered.To = lifecycle.StatusDelivered

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders SET status").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_status_history").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("DELETE FROM courier_orders").WithArgs("order-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.UpdateStatus(context.Background(), delivered))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresOrderRepository_History(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := storage.NewPostgresOrderRepository(db)

	mock.ExpectQuery("FROM order_status_history").
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "from_status", "to_status", "changed_by", "changed_at"}).
			AddRow("order-1", "", "pending", "client", fixedNow).
			AddRow("order-1", "pending", "confirmed", "kitchen", fixedNow.Add(time.Minute)))

	history, err := repo.History(context.Background(), "order-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, lifecycle.Status(""), history[0].From)
	assert.Equal(t, lifecycle.StatusConfirmed, history[1].To)
	assert.Equal(t, lifecycle.RoleKitchen, history[1].ChangedBy)
}

func TestPostgresCourierRepository_Assign(t *testing.T) {
	t.Run("assigned", func(t *testing.T) {
		db, mock := setupSQLMock(t)
		repo := storage.NewPostgresCourierRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT active FROM couriers WHERE id = \\$1 FOR UPDATE").
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"active"}).AddRow(true))
		mock.ExpectExec("UPDATE orders SET delivery_person_id").
			WithArgs(7, fixedNow, "order-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO courier_orders").
			WithArgs("order-1", 7, fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Assign(context.Background(), "order-1", 7, fixedNow))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inactive courier", func(t *testing.T) {
		db, mock := setupSQLMock(t)
		repo := storage.NewPostgresCourierRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT active FROM couriers").
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"active"}).AddRow(false))
		mock.ExpectRollback()

		err := repo.Assign(context.Background(), "order-1", 7, fixedNow)
		assert.ErrorIs(t, err, domain.ErrInactiveCourier)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order closed meanwhile", func(t *testing.T) {
		db, mock := setupSQLMock(t)
		repo := storage.NewPostgresCourierRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT active FROM couriers").
			WillReturnRows(sqlmock.NewRows([]string{"active"}).AddRow(true))
		mock.ExpectExec("UPDATE orders SET delivery_person_id").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Assign(context.Background(), "order-1", 7, fixedNow)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestPostgresCourierRepository_List(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := storage.NewPostgresCourierRepository(db)

	mock.ExpectQuery("FROM couriers c").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "vehicle", "active", "created_at", "orders"}).
			AddRow(1, "Sam", "1", "bike", true, fixedNow, "{order-1,order-2}").
			AddRow(2, "Kim", "2", "", true, fixedNow, "{}"))

	couriers, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, couriers, 2)
	assert.Equal(t, []string{"order-1", "order-2"}, couriers[0].CurrentOrders)
	assert.Equal(t, []string{}, couriers[1].CurrentOrders)
}

func TestPostgresDishCatalog_Lookup(t *testing.T) {
	db, mock := setupSQLMock(t)
	catalog := storage.NewPostgresDishCatalog(db)

	mock.ExpectQuery("SELECT id, name, price, active FROM dishes").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "active"}).
			AddRow(1, "Margherita", 10.0, true).
			AddRow(3, "Seasonal Soup", 6.0, false))

	dishes, err := catalog.Lookup(context.Background(), []int{1, 3, 9})
	require.NoError(t, err)
	assert.Len(t, dishes, 2)
	assert.False(t, dishes[3].Active)

	empty, err := catalog.Lookup(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgresOrderRepository_EnsureSchema(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := storage.NewPostgresOrderRepository(db)

	for i := 0; i < 7; i++ {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureSchema())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCartStore(t *testing.T) {
	ctx := context.Background()
	carts, mr := newRedisCartStore(t)

	empty, err := carts.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", empty.UserID)
	assert.Empty(t, empty.Items)

	cart, err := carts.Update(ctx, "user-1", func(cart *domain.Cart) error {
		cart.Items = append(cart.Items, domain.CartItem{DishID: 1, DishName: "Margherita", Price: 10, Quantity: 2})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, cart.TotalPrice)

	assert.True(t, mr.Exists("cart:user-1"))
	assert.Equal(t, 24*time.Hour, mr.TTL("cart:user-1"))

	loaded, err := carts.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TotalItems)
	assert.Equal(t, 20.0, loaded.TotalPrice)

	require.NoError(t, carts.Delete(ctx, "user-1"))
	assert.False(t, mr.Exists("cart:user-1"))
}

func TestRedisCartStore_UpdateErrorKeepsCart(t *testing.T) {
	ctx := context.Background()
	carts, _ := newRedisCartStore(t)

	_, err := carts.Update(ctx, "user-1", func(cart *domain.Cart) error {
		cart.Items = append(cart.Items, domain.CartItem{DishID: 1, Price: 10, Quantity: 1})
		return nil
	})
	require.NoError(t, err)

	_, err = carts.Update(ctx, "user-1", func(cart *domain.Cart) error {
		cart.Items = nil
		return fmt.Errorf("%w: dish 9 is not in the cart", domain.ErrNotFound)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	loaded, err := carts.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
}

func TestRedisCartStore_Unavailable(t *testing.T) {
	carts, mr := newRedisCartStore(t)
	mr.Close()

	_, err := carts.Load(context.Background(), "user-1")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestMemoryStore_CopyOnRead(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	orders := store.Orders()

	require.NoError(t, orders.Insert(ctx, sampleOrder(), domain.StatusChange{OrderID: "order-1", To: lifecycle.StatusPending}))

	first, err := orders.Get(ctx, "order-1")
	require.NoError(t, err)
	first.Items[0].Quantity = 99
	*first.Address = "elsewhere"
	first.Status = lifecycle.StatusCancelled

	second, err := orders.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Items[0].Quantity)
	assert.Equal(t, "12 Baker Street", *second.Address)
	assert.Equal(t, lifecycle.StatusPending, second.Status)
}

func TestMemoryStore_ReplayedWritesAreIdempotent(t *testing.T) {
	ctx := context.Background()
	orders := storage.NewMemoryStore().Orders()
	created := domain.StatusChange{OrderID: "order-1", To: lifecycle.StatusPending, ChangedBy: lifecycle.RoleClient, ChangedAt: fixedNow}

	require.NoError(t, orders.Insert(ctx, sampleOrder(), created))
	require.NoError(t, orders.Insert(ctx, sampleOrder(), created))

	confirm := domain.StatusChange{
		OrderID: "order-1", From: lifecycle.StatusPending, To: lifecycle.StatusConfirmed,
		ChangedBy: lifecycle.RoleKitchen, ChangedAt: fixedNow.Add(time.Minute),
	}
	require.NoError(t, orders.UpdateStatus(ctx, confirm))
	require.NoError(t, orders.UpdateStatus(ctx, confirm))

	history, err := orders.History(ctx, "order-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	list, err := orders.List(ctx, domain.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	later := confirm
	later.ChangedAt = fixedNow.Add(2 * time.Minute)
	assert.ErrorIs(t, orders.UpdateStatus(ctx, later), domain.ErrConflict)
}

func TestMemoryStore_Conflicts(t *testing.T) {
	ctx := context.Background()
	orders := storage.NewMemoryStore().Orders()

	require.NoError(t, orders.Insert(ctx, sampleOrder(), domain.StatusChange{OrderID: "order-1", To: lifecycle.StatusPending}))

	other := sampleOrder()
	other.CreatedAt = fixedNow.Add(time.Minute)
	assert.ErrorIs(t, orders.Insert(ctx, other, domain.StatusChange{}), domain.ErrConflict)

	stale := domain.StatusChange{OrderID: "order-1", From: lifecycle.StatusConfirmed, To: lifecycle.StatusPreparing}
	assert.ErrorIs(t, orders.UpdateStatus(ctx, stale), domain.ErrConflict)

	missing := domain.StatusChange{OrderID: "nope", From: lifecycle.StatusPending, To: lifecycle.StatusConfirmed}
	assert.ErrorIs(t, orders.UpdateStatus(ctx, missing), domain.ErrNotFound)
}

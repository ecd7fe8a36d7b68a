package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRatingTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostgresRepository_DishInOrder(t *testing.T) {
	db, mock := setupRatingTestDB(t)
	repo := storage.NewPostgresRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, "ord-99").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.DishInOrder(context.Background(), 1, "ord-99")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Append(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		prepareMock func(sqlmock.Sqlmock)
		expected    domain.DishSummary
		expectedErr error
	}{
		{
			name: "recomputes five and three",
			prepareMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT id FROM dishes WHERE id = \\$1 FOR UPDATE").
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectQuery("INSERT INTO ratings").
					WithArgs("user-2", 1, "ord-100", 3, "").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(8, createdAt))
				mock.ExpectQuery("SELECT score FROM ratings").
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"score"}).AddRow(5).AddRow(3))
				mock.ExpectExec("UPDATE dishes SET avg_rating").
					WithArgs(4.0, 2, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			expected: domain.DishSummary{DishID: 1, AverageRating: 4.0, TotalRatings: 2},
		},
		{
			name: "unknown dish",
			prepareMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT id FROM dishes").
					WithArgs(1).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name: "duplicate rating",
			prepareMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT id FROM dishes").
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectQuery("INSERT INTO ratings").
					WillReturnError(&pq.Error{Code: "23505"})
				mock.ExpectRollback()
			},
			expectedErr: domain.ErrDuplicateRating,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock := setupRatingTestDB(t)
			repo := storage.NewPostgresRepository(db)
			testCase.prepareMock(mock)

			rating := &domain.Rating{UserID: "user-2", DishID: 1, OrderID: "ord-100", Score: 3}
			summary, err := repo.Append(context.Background(), rating)

			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.expected, summary)
				assert.Equal(t, 8, rating.ID)
				assert.Equal(t, createdAt, rating.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_ListByDish(t *testing.T) {
	db, mock := setupRatingTestDB(t)
	repo := storage.NewPostgresRepository(db)
	createdAt := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, user_id, dish_id, order_id, score").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "dish_id", "order_id", "score", "comment", "created_at"}).
			AddRow(2, "user-2", 1, "ord-100", 3, "", createdAt).
			AddRow(1, "user-1", 1, "ord-99", 5, "Great", createdAt.Add(-time.Hour)))

	ratings, err := repo.ListByDish(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, 2, ratings[0].ID)
	assert.Equal(t, "Great", ratings[1].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	db, mock := setupRatingTestDB(t)
	repo := storage.NewPostgresRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ratings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_ratings_dish_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE IF EXISTS dishes ADD COLUMN IF NOT EXISTS avg_rating").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE IF EXISTS dishes ALTER COLUMN avg_rating TYPE DOUBLE PRECISION").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE IF EXISTS dishes ADD COLUMN IF NOT EXISTS review_count").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Marker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := storage.NewRedisCache(client, time.Hour)
	ctx := context.Background()

	key := cache.MarkerKey("user-1", 7, "ord-1")
	assert.Equal(t, "rating:user-1:7:ord-1", key)

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.SetMarker(ctx, key))
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	mr.FastForward(2 * time.Hour)
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mystic-books/internal/model"
	"mystic-books/internal/repository"
)

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	newOrder := func(bookID uuid.UUID, email string, price float64) *model.Order {
		return &model.Order{
			ID:        uuid.New(),
			BookID:    bookID,
			Email:     email,
			Author:    "Patrick Rothfuss",
			Price:     price,
			Status:    model.StatusPending,
			OrderDate: time.Now().UTC(),
		}
	}

	t.Run("Create and GetByID round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(uuid.New(), "a@x.com", 14.99)
		require.NoError(t, repo.Create(ctx, order))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, model.StatusPending, got.Status)
		assert.Empty(t, got.PaymentStatus)
		assert.Nil(t, got.PaymentDate)
	})

	t.Run("duplicate buyer and book pair violates the unique index", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		bookID := uuid.New()
		require.NoError(t, repo.Create(ctx, newOrder(bookID, "a@x.com", 14.99)))

		err := repo.Create(ctx, newOrder(bookID, "a@x.com", 14.99))
		assert.Equal(t, model.ErrDuplicate, err)

		// The same book for another buyer is fine.
		require.NoError(t, repo.Create(ctx, newOrder(bookID, "b@y.com", 14.99)))
	})

	t.Run("ExistsForBuyer", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		bookID := uuid.New()
		require.NoError(t, repo.Create(ctx, newOrder(bookID, "a@x.com", 14.99)))

		exists, err := repo.ExistsForBuyer(ctx, bookID, "a@x.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForBuyer(ctx, bookID, "b@y.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("GetByID returns nil for non-existent order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, order)
	})

	t.Run("ListByEmail sorts by price descending", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Create(ctx, newOrder(uuid.New(), "a@x.com", 10.00)))
		require.NoError(t, repo.Create(ctx, newOrder(uuid.New(), "a@x.com", 30.00)))
		require.NoError(t, repo.Create(ctx, newOrder(uuid.New(), "a@x.com", 20.00)))
		require.NoError(t, repo.Create(ctx, newOrder(uuid.New(), "b@y.com", 99.00)))

		orders, err := repo.ListByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, 30.00, orders[0].Price)
		assert.Equal(t, 20.00, orders[1].Price)
		assert.Equal(t, 10.00, orders[2].Price)
	})

	t.Run("Cancel only matches a pending order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(uuid.New(), "a@x.com", 14.99)
		require.NoError(t, repo.Create(ctx, order))

		ok, err := repo.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		// A second cancel finds nothing pending.
		ok, err = repo.Cancel(ctx, order.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
	})

	t.Run("Cancel reports false for non-existent order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		ok, err := repo.Cancel(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SetStatus overwrites unconditionally", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(uuid.New(), "a@x.com", 14.99)
		require.NoError(t, repo.Create(ctx, order))

		ok, err := repo.SetStatus(ctx, order.ID, model.StatusCompleted)
		require.NoError(t, err)
		assert.True(t, ok)

		// Back to pending, no source-state guard.
		ok, err = repo.SetStatus(ctx, order.ID, model.StatusPending)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("MarkPaid records the reconciliation fields", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(uuid.New(), "a@x.com", 14.99)
		require.NoError(t, repo.Create(ctx, order))

		paidAt := time.Now().UTC()
		ok, err := repo.MarkPaid(ctx, order.ID, "pi_123", paidAt)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)
		assert.Equal(t, "pi_123", got.TransactionID)
		require.NotNil(t, got.PaymentDate)
		// Paying does not move the lifecycle status.
		assert.Equal(t, model.StatusPending, got.Status)
	})

	t.Run("ListPaidByEmail returns only reconciled orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		paid := newOrder(uuid.New(), "a@x.com", 14.99)
		unpaid := newOrder(uuid.New(), "a@x.com", 9.99)
		require.NoError(t, repo.Create(ctx, paid))
		require.NoError(t, repo.Create(ctx, unpaid))

		ok, err := repo.MarkPaid(ctx, paid.ID, "pi_123", time.Now().UTC())
		require.NoError(t, err)
		require.True(t, ok)

		orders, err := repo.ListPaidByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, paid.ID, orders[0].ID)
	})

	t.Run("Delete reports the row count", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := newOrder(uuid.New(), "a@x.com", 14.99)
		require.NoError(t, repo.Create(ctx, order))

		count, err := repo.Delete(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.Delete(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewUserRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create, GetByEmail and SetRole", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{
			ID:        uuid.New(),
			Name:      "Alice",
			Email:     "alice@x.com",
			Role:      model.RoleUser,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.RoleUser, got.Role)

		changed, err := repo.SetRole(ctx, user.ID, model.RoleLibrarian)
		require.NoError(t, err)
		assert.Equal(t, int64(1), changed)

		got, err = repo.GetByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleLibrarian, got.Role)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{ID: uuid.New(), Name: "Alice", Email: "alice@x.com", Role: model.RoleUser, CreatedAt: time.Now().UTC()}
		require.NoError(t, repo.Create(ctx, user))

		dup := &model.User{ID: uuid.New(), Name: "Other Alice", Email: "alice@x.com", Role: model.RoleUser, CreatedAt: time.Now().UTC()}
		err := repo.Create(ctx, dup)
		assert.Equal(t, model.ErrDuplicate, err)
	})

	t.Run("GetByEmail returns nil for unknown user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		got, err := repo.GetByEmail(ctx, "ghost@x.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStatsRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	statsRepo := repository.NewStatsRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	CleanupDB(t, testDB.Pool)
	SeedBooks(t, testDB.Pool)

	pending := &model.Order{ID: uuid.New(), BookID: uuid.New(), Email: "a@x.com", Price: 10, Status: model.StatusPending, OrderDate: time.Now().UTC()}
	cancelled := &model.Order{ID: uuid.New(), BookID: uuid.New(), Email: "a@x.com", Price: 20, Status: model.StatusCancelled, OrderDate: time.Now().UTC()}
	require.NoError(t, orderRepo.Create(ctx, pending))
	require.NoError(t, orderRepo.Create(ctx, cancelled))

	ok, err := orderRepo.MarkPaid(ctx, pending.ID, "pi_123", time.Now().UTC())
	require.NoError(t, err)
	require.True(t, ok)

	books, err := statsRepo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), books)

	orders, err := statsRepo.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), orders)

	pendingCount, err := statsRepo.CountOrdersByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pendingCount)

	cancelledCount, err := statsRepo.CountOrdersByStatus(ctx, model.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelledCount)

	paidCount, err := statsRepo.CountPaidOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), paidCount)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"mystic-books/internal/model"
)

const orderColumns = `id, book_id, email, author, price, status, payment_status, transaction_id, order_date, payment_date`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts a new order. The unique index on (book_id, email) turns a
// concurrent duplicate create into model.ErrDuplicate.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (id, book_id, email, author, price, status, payment_status, transaction_id, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID, order.BookID, order.Email, order.Author, order.Price,
		order.Status, order.PaymentStatus, order.TransactionID, order.OrderDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().
				Str("book_id", order.BookID.String()).
				Str("email", order.Email).
				Msg("duplicate order insert rejected")
			return model.ErrDuplicate
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// ExistsForBuyer reports whether the buyer already ordered the book.
func (r *orderRepository) ExistsForBuyer(ctx context.Context, bookID uuid.UUID, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE book_id = $1 AND email = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, bookID, email).Scan(&exists)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("book_id", bookID.String()).
			Str("email", email).
			Msg("failed to check for existing order")
		return false, fmt.Errorf("failed to check for existing order: %w", err)
	}

	return exists, nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// ListByEmail retrieves a buyer's orders sorted by price descending.
func (r *orderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE email = $1 ORDER BY price DESC`, orderColumns)
	return r.list(ctx, query, email)
}

// ListAll retrieves every order sorted by price descending.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ORDER BY price DESC`, orderColumns)
	return r.list(ctx, query)
}

// ListPaidByEmail retrieves a buyer's reconciled orders.
func (r *orderRepository) ListPaidByEmail(ctx context.Context, email string) ([]model.Order, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM orders WHERE email = $1 AND payment_status = $2 ORDER BY payment_date DESC`,
		orderColumns,
	)
	return r.list(ctx, query, email, model.PaymentStatusPaid)
}

// Cancel transitions an order from pending to cancelled. The status guard
// lives in the WHERE clause so a concurrent transition cannot be lost.
func (r *orderRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`

	tag, err := r.pool.Exec(ctx, query, model.StatusCancelled, id, model.StatusPending)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to cancel order")
		return false, fmt.Errorf("failed to cancel order: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// SetStatus overwrites an order's status regardless of current value.
func (r *orderRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("failed to set order status")
		return false, fmt.Errorf("failed to set order status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkPaid records a successful payment on an order.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET payment_status = $1, transaction_id = $2, payment_date = $3
		WHERE id = $4
	`

	tag, err := r.pool.Exec(ctx, query, model.PaymentStatusPaid, transactionID, paidAt, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("transaction_id", transactionID).
			Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes an order.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return 0, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID, &o.BookID, &o.Email, &o.Author, &o.Price,
			&o.Status, &o.PaymentStatus, &o.TransactionID, &o.OrderDate, &o.PaymentDate,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) scanOne(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.BookID, &o.Email, &o.Author, &o.Price,
		&o.Status, &o.PaymentStatus, &o.TransactionID, &o.OrderDate, &o.PaymentDate,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"mystic-books/internal/model"
)

// statsRepository implements the StatsRepository interface using PostgreSQL.
type statsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStatsRepository creates a new PostgreSQL-backed stats repository.
func NewStatsRepository(pool *pgxpool.Pool, logger zerolog.Logger) StatsRepository {
	return &statsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "stats").Logger(),
	}
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *statsRepository) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
}

func (r *statsRepository) CountBooks(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM books`)
}

func (r *statsRepository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders`)
}

func (r *statsRepository) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status)
}

func (r *statsRepository) CountPaidOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM orders WHERE payment_status = $1`, model.PaymentStatusPaid)
}

func (r *statsRepository) CountReviews(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews`)
}

func (r *statsRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to count rows")
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

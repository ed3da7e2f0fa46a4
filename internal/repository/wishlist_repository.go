package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"mystic-books/internal/model"
)

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// ListByEmail retrieves a buyer's wishlist, newest first.
func (r *wishlistRepository) ListByEmail(ctx context.Context, email string) ([]model.WishlistItem, error) {
	query := `
		SELECT id, book_id, email, created_at
		FROM wishlist
		WHERE email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var item model.WishlistItem
		err := rows.Scan(&item.ID, &item.BookID, &item.Email, &item.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist row")
			return nil, fmt.Errorf("failed to scan wishlist entry: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating wishlist rows")
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}

	return items, nil
}

// Add inserts a wishlist entry.
func (r *wishlistRepository) Add(ctx context.Context, item *model.WishlistItem) error {
	query := `
		INSERT INTO wishlist (id, book_id, email, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.BookID, item.Email, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().
				Str("book_id", item.BookID.String()).
				Str("email", item.Email).
				Msg("duplicate wishlist insert rejected")
			return model.ErrDuplicate
		}
		r.logger.Error().Err(err).Str("email", item.Email).Msg("failed to add wishlist entry")
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}

	return nil
}

// GetByID retrieves a wishlist entry by its ID.
func (r *wishlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.WishlistItem, error) {
	query := `
		SELECT id, book_id, email, created_at
		FROM wishlist
		WHERE id = $1
	`

	var item model.WishlistItem
	err := r.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.BookID, &item.Email, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("wishlist_id", id.String()).Msg("wishlist entry not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("wishlist_id", id.String()).Msg("failed to query wishlist entry")
		return nil, fmt.Errorf("failed to query wishlist entry: %w", err)
	}

	return &item, nil
}

// Delete removes a wishlist entry.
func (r *wishlistRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wishlist WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", id.String()).Msg("failed to delete wishlist entry")
		return 0, fmt.Errorf("failed to delete wishlist entry: %w", err)
	}

	return tag.RowsAffected(), nil
}

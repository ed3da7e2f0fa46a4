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

const bookColumns = `id, title, author, price, category, description, image_url, created_at`

// bookRepository implements the BookRepository interface using PostgreSQL.
type bookRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool *pgxpool.Pool, logger zerolog.Logger) BookRepository {
	return &bookRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "book").Logger(),
	}
}

// GetAll retrieves books sorted by price descending, optionally scoped to
// a single author for librarian listings.
func (r *bookRepository) GetAll(ctx context.Context, author string) ([]model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books ORDER BY price DESC`, bookColumns)
	args := []any{}
	if author != "" {
		query = fmt.Sprintf(`SELECT %s FROM books WHERE author = $1 ORDER BY price DESC`, bookColumns)
		args = append(args, author)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query books")
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Category, &b.Description, &b.ImageURL, &b.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan book row")
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating book rows")
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// GetByID retrieves a single book by its ID.
func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	var b model.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Price, &b.Category, &b.Description, &b.ImageURL, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("book_id", id.String()).Msg("book not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("book_id", id.String()).Msg("failed to query book")
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	return &b, nil
}

// Create inserts a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (id, title, author, price, category, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID, book.Title, book.Author, book.Price,
		book.Category, book.Description, book.ImageURL, book.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("book_id", book.ID.String()).Msg("failed to create book")
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// Update overwrites a book's mutable fields.
func (r *bookRepository) Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) (int64, error) {
	query := `
		UPDATE books
		SET title = $1, author = $2, price = $3, category = $4, description = $5, image_url = $6
		WHERE id = $7
	`

	tag, err := r.pool.Exec(ctx, query,
		req.Title, req.Author, req.Price, req.Category, req.Description, req.ImageURL, id,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("book_id", id.String()).Msg("failed to update book")
		return 0, fmt.Errorf("failed to update book: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes a book.
func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("book_id", id.String()).Msg("failed to delete book")
		return 0, fmt.Errorf("failed to delete book: %w", err)
	}

	return tag.RowsAffected(), nil
}

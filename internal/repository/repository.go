package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mystic-books/internal/model"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]model.User, error)

	// GetByEmail retrieves a user by email, or nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts a new user. Returns model.ErrDuplicate if the email
	// is already registered.
	Create(ctx context.Context, user *model.User) error

	// SetRole updates a user's role. Returns the number of rows changed.
	SetRole(ctx context.Context, id uuid.UUID, role string) (int64, error)
}

// BookRepository defines the interface for book data access operations.
type BookRepository interface {
	// GetAll retrieves books sorted by price descending. An empty author
	// filter returns the whole catalogue.
	GetAll(ctx context.Context, author string) ([]model.Book, error)

	// GetByID retrieves a single book by its ID, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Create inserts a new book.
	Create(ctx context.Context, book *model.Book) error

	// Update overwrites a book's mutable fields. Returns rows changed.
	Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) (int64, error)

	// Delete removes a book. Returns the number of rows deleted.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts a new order. Returns model.ErrDuplicate when an order
	// for the same (book, buyer) pair already exists; the unique index
	// enforces this even under concurrent creates.
	Create(ctx context.Context, order *model.Order) error

	// ExistsForBuyer reports whether the buyer already ordered the book.
	ExistsForBuyer(ctx context.Context, bookID uuid.UUID, email string) (bool, error)

	// GetByID retrieves an order by its ID, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByEmail retrieves a buyer's orders sorted by price descending.
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)

	// ListAll retrieves every order sorted by price descending.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListPaidByEmail retrieves a buyer's reconciled orders.
	ListPaidByEmail(ctx context.Context, email string) ([]model.Order, error)

	// Cancel transitions an order from pending to cancelled as a single
	// conditional update. Returns false when the order was not pending.
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)

	// SetStatus overwrites an order's status regardless of current value.
	// Returns false when no such order exists.
	SetStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error)

	// MarkPaid records a successful payment on an order. Returns false
	// when no such order exists.
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string, paidAt time.Time) (bool, error)

	// Delete removes an order. Returns the number of rows deleted.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	// ListByEmail retrieves a buyer's wishlist, newest first.
	ListByEmail(ctx context.Context, email string) ([]model.WishlistItem, error)

	// Add inserts a wishlist entry. Returns model.ErrDuplicate when the
	// buyer already bookmarked the book.
	Add(ctx context.Context, item *model.WishlistItem) error

	// GetByID retrieves a wishlist entry by its ID, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.WishlistItem, error)

	// Delete removes a wishlist entry. Returns the number of rows deleted.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// ListByBook retrieves a book's reviews, newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error)

	// Create inserts a new review.
	Create(ctx context.Context, review *model.Review) error
}

// StatsRepository exposes the independent counts behind GET /stats.
// Each call is a single read; the service layer gathers them concurrently.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	CountBooks(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	CountPaidOrders(ctx context.Context) (int64, error)
	CountReviews(ctx context.Context) (int64, error)
}

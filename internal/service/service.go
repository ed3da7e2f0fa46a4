package service

import (
	"context"

	"github.com/google/uuid"

	"mystic-books/internal/auth"
	"mystic-books/internal/model"
)

// UserService defines operations for account management.
type UserService interface {
	// ListUsers retrieves all registered users.
	ListUsers(ctx context.Context) ([]model.User, error)

	// GetRole looks up a user's role by email.
	GetRole(ctx context.Context, email string) (string, error)

	// Register creates a user unless the email is already registered, in
	// which case it reports success with a null insertedId.
	Register(ctx context.Context, req *model.UserRequest) (*model.CreateResult, error)

	// SetRole overwrites a user's role.
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

// BookService defines operations for catalogue management.
type BookService interface {
	// List retrieves books sorted by price descending, optionally scoped
	// to one author.
	List(ctx context.Context, author string) ([]model.Book, error)

	// Get retrieves a single book.
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Add inserts a new book.
	Add(ctx context.Context, req *model.BookRequest) (*model.CreateResult, error)

	// Update overwrites a book's mutable fields.
	Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) error

	// Delete removes a book.
	Delete(ctx context.Context, id uuid.UUID) (*model.DeleteResult, error)
}

// OrderService defines operations for the order lifecycle.
type OrderService interface {
	// Create places an order for the calling buyer. A repeat order for the
	// same book reports success with a null insertedId, not an error.
	Create(ctx context.Context, caller auth.Identity, req *model.OrderRequest) (*model.CreateResult, error)

	// List retrieves orders for the given email, sorted by price
	// descending. Non-operators may only list their own.
	List(ctx context.Context, caller auth.Identity, email string) ([]model.Order, error)

	// Get retrieves a single order. Existence is checked before ownership.
	Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Order, error)

	// Cancel transitions the caller's pending order to cancelled.
	Cancel(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Order, error)

	// SetStatus is the operator overwrite of an order's status.
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)

	// Delete hard-deletes an order with no lifecycle implication.
	Delete(ctx context.Context, id uuid.UUID) (*model.DeleteResult, error)
}

// PaymentService correlates external checkout sessions with orders.
type PaymentService interface {
	// CreateCheckoutSession creates an external session for a pending,
	// unpaid order owned by the caller and returns the redirect URL.
	CreateCheckoutSession(ctx context.Context, caller auth.Identity, orderID uuid.UUID) (*model.CheckoutResponse, error)

	// Reconcile reads the session outcome back. A paid session marks the
	// referenced order paid; anything else mutates nothing.
	Reconcile(ctx context.Context, sessionID string) (*model.PaymentResult, error)

	// ListPayments retrieves a buyer's reconciled orders.
	ListPayments(ctx context.Context, caller auth.Identity, email string) ([]model.Order, error)
}

// WishlistService defines operations for buyer wishlists.
type WishlistService interface {
	// List retrieves wishlist entries for the given email; non-operators
	// may only list their own.
	List(ctx context.Context, caller auth.Identity, email string) ([]model.WishlistItem, error)

	// Add bookmarks a book for the caller; duplicates report success with
	// a null insertedId.
	Add(ctx context.Context, caller auth.Identity, req *model.WishlistRequest) (*model.CreateResult, error)

	// Remove deletes one of the caller's entries.
	Remove(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.DeleteResult, error)
}

// ReviewService defines operations for book reviews.
type ReviewService interface {
	// ListByBook retrieves a book's reviews, newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error)

	// Add posts a review under the caller's identity.
	Add(ctx context.Context, caller auth.Identity, req *model.ReviewRequest) (*model.CreateResult, error)
}

// StatsService produces the aggregate summary.
type StatsService interface {
	// Summary gathers the independent counts concurrently.
	Summary(ctx context.Context) (*model.Stats, error)
}

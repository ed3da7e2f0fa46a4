package model

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is a buyer's bookmark on a book. At most one entry per
// (book, email) pair.
type WishlistItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookID    uuid.UUID `json:"bookId" db:"book_id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// WishlistRequest represents the payload for adding a wishlist entry.
type WishlistRequest struct {
	BookID uuid.UUID `json:"bookId"`
}

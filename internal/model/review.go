package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer's rating and comment on a book.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookID    uuid.UUID `json:"bookId" db:"book_id"`
	Email     string    `json:"email" db:"email"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewRequest represents the payload for posting a review.
type ReviewRequest struct {
	BookID  uuid.UUID `json:"bookId"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
}

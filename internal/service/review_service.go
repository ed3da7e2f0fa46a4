package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mystic-books/internal/auth"
	"mystic-books/internal/model"
	"mystic-books/internal/repository"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	logger     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		logger:     logger.With().Str("service", "review").Logger(),
	}
}

// ListByBook retrieves a book's reviews, newest first.
func (s *reviewService) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error) {
	if bookID == uuid.Nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "bookId is required")
	}
	return s.reviewRepo.ListByBook(ctx, bookID)
}

// Add posts a review under the caller's identity.
func (s *reviewService) Add(ctx context.Context, caller auth.Identity, req *model.ReviewRequest) (*model.CreateResult, error) {
	if req == nil || req.BookID == uuid.Nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "bookId is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	review := &model.Review{
		ID:        uuid.New(),
		BookID:    req.BookID,
		Email:     caller.Email,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	s.logger.Info().
		Str("book_id", req.BookID.String()).
		Str("email", caller.Email).
		Int("rating", req.Rating).
		Msg("review posted")

	return &model.CreateResult{InsertedID: &review.ID}, nil
}

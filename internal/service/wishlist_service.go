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

// wishlistService implements WishlistService.
type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	logger       zerolog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, logger zerolog.Logger) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		logger:       logger.With().Str("service", "wishlist").Logger(),
	}
}

// List retrieves wishlist entries for the given email. An empty email
// means the caller's own.
func (s *wishlistService) List(ctx context.Context, caller auth.Identity, email string) ([]model.WishlistItem, error) {
	if email == "" {
		email = caller.Email
	}
	if email != caller.Email && !caller.IsOperator() {
		return nil, model.ErrForbidden
	}

	return s.wishlistRepo.ListByEmail(ctx, email)
}

// Add bookmarks a book for the caller. Duplicates report success with a
// null insertedId, same contract as the duplicate-order guard.
func (s *wishlistService) Add(ctx context.Context, caller auth.Identity, req *model.WishlistRequest) (*model.CreateResult, error) {
	if req == nil || req.BookID == uuid.Nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "bookId is required")
	}

	item := &model.WishlistItem{
		ID:        uuid.New(),
		BookID:    req.BookID,
		Email:     caller.Email,
		CreatedAt: time.Now(),
	}

	if err := s.wishlistRepo.Add(ctx, item); err != nil {
		if err == model.ErrDuplicate {
			return &model.CreateResult{Message: "Already in wishlist"}, nil
		}
		return nil, fmt.Errorf("failed to add wishlist entry: %w", err)
	}

	return &model.CreateResult{InsertedID: &item.ID}, nil
}

// Remove deletes one of the caller's entries, checking existence before
// ownership.
func (s *wishlistService) Remove(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.DeleteResult, error) {
	item, err := s.wishlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	if item == nil {
		return nil, model.ErrWishlistNotFound
	}
	if item.Email != caller.Email && !caller.IsOperator() {
		return nil, model.ErrForbidden
	}

	count, err := s.wishlistRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to remove wishlist entry: %w", err)
	}

	return &model.DeleteResult{DeletedCount: count}, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mystic-books/internal/model"
	"mystic-books/internal/repository"
)

// bookService implements BookService.
type bookService struct {
	bookRepo repository.BookRepository
	logger   zerolog.Logger
}

// NewBookService creates a new book service.
func NewBookService(bookRepo repository.BookRepository, logger zerolog.Logger) BookService {
	return &bookService{
		bookRepo: bookRepo,
		logger:   logger.With().Str("service", "book").Logger(),
	}
}

// List retrieves books sorted by price descending.
func (s *bookService) List(ctx context.Context, author string) ([]model.Book, error) {
	return s.bookRepo.GetAll(ctx, author)
}

// Get retrieves a single book.
func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}

	return book, nil
}

// Add inserts a new book.
func (s *bookService) Add(ctx context.Context, req *model.BookRequest) (*model.CreateResult, error) {
	if err := validateBookRequest(req); err != nil {
		return nil, err
	}

	book := &model.Book{
		ID:          uuid.New(),
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	s.logger.Info().Str("book_id", book.ID.String()).Str("title", book.Title).Msg("book added")

	return &model.CreateResult{InsertedID: &book.ID}, nil
}

// Update overwrites a book's mutable fields.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) error {
	if err := validateBookRequest(req); err != nil {
		return err
	}

	count, err := s.bookRepo.Update(ctx, id, req)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if count == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// Delete removes a book.
func (s *bookService) Delete(ctx context.Context, id uuid.UUID) (*model.DeleteResult, error) {
	count, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	if count == 0 {
		return nil, model.ErrBookNotFound
	}

	s.logger.Info().Str("book_id", id.String()).Msg("book deleted")

	return &model.DeleteResult{DeletedCount: count}, nil
}

func validateBookRequest(req *model.BookRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if req.Title == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "title is required")
	}
	if req.Author == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "author is required")
	}
	if req.Price < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "price must not be negative")
	}
	return nil
}

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

// alreadyOrderedMessage is part of the create contract: a duplicate order
// is a friendly no-op, not an error.
const alreadyOrderedMessage = "You have already ordered this book"

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create places an order for the calling buyer. The pre-insert existence
// check keeps the friendly duplicate response; the unique index at the
// store closes the window between check and insert.
func (s *orderService) Create(ctx context.Context, caller auth.Identity, req *model.OrderRequest) (*model.CreateResult, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if req.BookID == uuid.Nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "bookId is required")
	}
	if req.Price < 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "price must not be negative")
	}

	exists, err := s.orderRepo.ExistsForBuyer(ctx, req.BookID, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if exists {
		s.logger.Debug().
			Str("book_id", req.BookID.String()).
			Str("email", caller.Email).
			Msg("duplicate order create short-circuited")
		return &model.CreateResult{Message: alreadyOrderedMessage}, nil
	}

	order := &model.Order{
		ID:        uuid.New(),
		BookID:    req.BookID,
		Email:     caller.Email,
		Author:    req.Author,
		Price:     req.Price,
		Status:    model.StatusPending,
		OrderDate: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// A concurrent create for the same pair won the race; report the
		// same friendly result the existence check would have produced.
		if err == model.ErrDuplicate {
			return &model.CreateResult{Message: alreadyOrderedMessage}, nil
		}
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("book_id", req.BookID.String()).
		Str("email", caller.Email).
		Msg("order created")

	return &model.CreateResult{InsertedID: &order.ID}, nil
}

// List retrieves orders for the given email. An empty email means the
// caller's own orders, or every order for an operator.
func (s *orderService) List(ctx context.Context, caller auth.Identity, email string) ([]model.Order, error) {
	if email == "" {
		if caller.IsOperator() {
			return s.orderRepo.ListAll(ctx)
		}
		email = caller.Email
	}

	if email != caller.Email && !caller.IsOperator() {
		s.logger.Warn().
			Str("caller", caller.Email).
			Str("requested", email).
			Msg("cross-buyer order listing denied")
		return nil, model.ErrForbidden
	}

	return s.orderRepo.ListByEmail(ctx, email)
}

// Get retrieves a single order, checking existence before ownership.
func (s *orderService) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Email != caller.Email && !caller.IsOperator() {
		return nil, model.ErrForbidden
	}

	return order, nil
}

// Cancel transitions the caller's pending order to cancelled. The status
// guard is a conditional update, so a concurrent transition cannot be lost;
// a zero-row update on an order known to exist is an invalid transition.
func (s *orderService) Cancel(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Email != caller.Email {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("owner", order.Email).
			Str("caller", caller.Email).
			Msg("cancel by non-owner denied")
		return nil, model.ErrForbidden
	}

	ok, err := s.orderRepo.Cancel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if !ok {
		return nil, model.ErrInvalidTransition
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order cancelled")

	order.Status = model.StatusCancelled
	return order, nil
}

// SetStatus is the operator overwrite: any known status may replace any
// current value. Only cancellation is a guarded transition.
func (s *orderService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	normalised, err := model.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	ok, err := s.orderRepo.SetStatus(ctx, id, normalised)
	if err != nil {
		return nil, fmt.Errorf("failed to set order status: %w", err)
	}
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to set order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(normalised)).
		Msg("order status overwritten")

	return order, nil
}

// Delete hard-deletes an order.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) (*model.DeleteResult, error) {
	count, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	if count == 0 {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")

	return &model.DeleteResult{DeletedCount: count}, nil
}

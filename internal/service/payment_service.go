package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mystic-books/internal/auth"
	"mystic-books/internal/model"
	"mystic-books/internal/payment"
	"mystic-books/internal/repository"
)

// paymentService implements PaymentService.
type paymentService struct {
	orderRepo repository.OrderRepository
	bookRepo  repository.BookRepository
	client    payment.Client
	logger    zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	bookRepo repository.BookRepository,
	client payment.Client,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		client:    client,
		logger:    logger.With().Str("service", "payment").Logger(),
	}
}

// CreateCheckoutSession creates an external session for a pending, unpaid
// order owned by the caller. The order id and buyer email ride as session
// metadata and come back verbatim at reconciliation; no local state is
// touched here. An abandoned checkout leaves the order pending and unpaid.
func (s *paymentService) CreateCheckoutSession(ctx context.Context, caller auth.Identity, orderID uuid.UUID) (*model.CheckoutResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Email != caller.Email {
		return nil, model.ErrForbidden
	}
	if order.Paid() {
		return nil, model.ErrAlreadyPaid
	}
	if order.Status != model.StatusPending {
		return nil, model.ErrOrderNotPending
	}

	productName := "Book order"
	if book, err := s.bookRepo.GetByID(ctx, order.BookID); err == nil && book != nil {
		productName = book.Title
	}

	session, err := s.client.CreateCheckoutSession(ctx, payment.SessionRequest{
		AmountCents: int64(math.Round(order.Price * 100)),
		Currency:    "usd",
		ProductName: productName,
		OrderID:     order.ID.String(),
		BuyerEmail:  order.Email,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("checkout session creation failed")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("session_id", session.ID).
		Msg("checkout session created")

	return &model.CheckoutResponse{URL: session.URL}, nil
}

// Reconcile reads the session outcome back. Only a paid session mutates the
// store: a single update sets payment_status, transactionId and paymentDate
// on the referenced order. The lifecycle status stays untouched.
func (s *paymentService) Reconcile(ctx context.Context, sessionID string) (*model.PaymentResult, error) {
	session, err := s.client.RetrieveSession(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("session retrieval failed")
		return nil, fmt.Errorf("failed to retrieve payment session: %w", err)
	}

	if !session.Paid {
		s.logger.Info().Str("session_id", sessionID).Msg("session not paid, no reconciliation")
		return &model.PaymentResult{Success: false, Message: "Payment not completed"}, nil
	}

	orderID, err := uuid.Parse(session.OrderID)
	if err != nil {
		s.logger.Error().
			Str("session_id", sessionID).
			Str("order_id", session.OrderID).
			Msg("session metadata carries no valid order id")
		return nil, model.ErrOrderNotFound
	}

	ok, err := s.orderRepo.MarkPaid(ctx, orderID, session.TransactionID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile payment: %w", err)
	}
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("transaction_id", session.TransactionID).
		Msg("payment reconciled")

	return &model.PaymentResult{
		Success:       true,
		Message:       "Payment recorded",
		TransactionID: session.TransactionID,
	}, nil
}

// ListPayments retrieves a buyer's reconciled orders. An empty email means
// the caller's own.
func (s *paymentService) ListPayments(ctx context.Context, caller auth.Identity, email string) ([]model.Order, error) {
	if email == "" {
		email = caller.Email
	}
	if email != caller.Email && !caller.IsOperator() {
		return nil, model.ErrForbidden
	}

	return s.orderRepo.ListPaidByEmail(ctx, email)
}

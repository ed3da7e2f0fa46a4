package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCancelled OrderStatus = "cancelled"
	StatusCompleted OrderStatus = "completed"
)

// ParseOrderStatus normalises a status string to one of the known states.
// "delivered" is accepted as a legacy alias for "completed".
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "cancelled":
		return StatusCancelled, nil
	case "completed", "delivered":
		return StatusCompleted, nil
	}
	return "", ErrUnknownStatus
}

// PaymentStatusPaid is the only value payment_status ever takes; an unpaid
// order carries the empty string.
const PaymentStatusPaid = "paid"

// Order represents a buyer's claim on one book.
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	BookID        uuid.UUID   `json:"bookId" db:"book_id"`
	Email         string      `json:"email" db:"email"`
	Author        string      `json:"author" db:"author"`
	Price         float64     `json:"price" db:"price"`
	Status        OrderStatus `json:"status" db:"status"`
	PaymentStatus string      `json:"payment_status,omitempty" db:"payment_status"`
	TransactionID string      `json:"transactionId,omitempty" db:"transaction_id"`
	OrderDate     time.Time   `json:"date" db:"order_date"`
	PaymentDate   *time.Time  `json:"paymentDate,omitempty" db:"payment_date"`
}

// Paid reports whether the order has been reconciled against a payment.
func (o *Order) Paid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	BookID uuid.UUID `json:"bookId"`
	Author string    `json:"author"`
	Price  float64   `json:"price"`
}

// StatusRequest represents the payload for an operator status overwrite.
type StatusRequest struct {
	Status string `json:"status"`
}

// CreateResult mirrors the driver-style insert acknowledgement the original
// clients consume. InsertedID is null when the duplicate guard short-circuits.
type CreateResult struct {
	InsertedID *uuid.UUID `json:"insertedId"`
	Message    string     `json:"message,omitempty"`
}

// DeleteResult mirrors the driver-style delete acknowledgement.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

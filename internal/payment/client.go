// Package payment treats the external payment processor as a capability
// with exactly two operations: create a checkout session carrying the
// order correlation metadata, and read a session's outcome back. The
// processor is never used as a data store beyond that metadata echo.
package payment

import "context"

// SessionRequest describes a checkout session to create. OrderID and
// BuyerEmail ride as opaque metadata and come back verbatim on retrieval.
type SessionRequest struct {
	AmountCents int64
	Currency    string
	ProductName string
	OrderID     string
	BuyerEmail  string
}

// Session is the processor's view of a checkout session.
type Session struct {
	ID            string
	URL           string
	Paid          bool
	OrderID       string
	BuyerEmail    string
	TransactionID string
}

// Client is the payment-processor capability.
type Client interface {
	// CreateCheckoutSession registers a session and returns the redirect
	// URL the buyer completes payment at. No local state is touched.
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)

	// RetrieveSession reads a session's outcome and metadata back.
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}

package model

// Stats is the aggregate summary served by GET /stats. The role counts
// partition totalUsers and the status counts partition totalOrders.
type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	Admins          int64 `json:"admins"`
	Librarians      int64 `json:"librarians"`
	Users           int64 `json:"users"`
	TotalBooks      int64 `json:"totalBooks"`
	TotalOrders     int64 `json:"totalOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	CompletedOrders int64 `json:"completedOrders"`
	CancelledOrders int64 `json:"cancelledOrders"`
	PaidOrders      int64 `json:"paidOrders"`
	TotalReviews    int64 `json:"totalReviews"`
}

// PaymentResult is the outcome of reconciling a checkout session.
type PaymentResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

// CheckoutResponse carries the external redirect URL back to the buyer.
type CheckoutResponse struct {
	URL string `json:"url"`
}

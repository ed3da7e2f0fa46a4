package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeDuplicate         = "DUPLICATE"
	ErrCodeUnknownStatus     = "UNKNOWN_STATUS"
	ErrCodeUnknownRole       = "UNKNOWN_ROLE"
	ErrCodeUpstreamFailure   = "UPSTREAM_FAILURE"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation carrying a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOrderNotFound     = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrBookNotFound      = NewDomainError(ErrCodeNotFound, "Book Not Found")
	ErrUserNotFound      = NewDomainError(ErrCodeNotFound, "User not found")
	ErrWishlistNotFound  = NewDomainError(ErrCodeNotFound, "Wishlist entry not found")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Forbidden")
	ErrUnauthenticated   = NewDomainError(ErrCodeUnauthenticated, "Unauthorized access")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Order cannot be cancelled in its current status")
	ErrUnknownStatus     = NewDomainError(ErrCodeUnknownStatus, "Unknown order status")
	ErrDuplicate         = NewDomainError(ErrCodeDuplicate, "Already exists")
	ErrUnknownRole       = NewDomainError(ErrCodeUnknownRole, "Unknown user role")
	ErrAlreadyPaid       = NewDomainError(ErrCodeInvalidTransition, "Order is already paid")
	ErrOrderNotPending   = NewDomainError(ErrCodeInvalidTransition, "Order is not pending")
	ErrInvalidRating     = NewDomainError(ErrCodeMissingField, "Rating must be between 1 and 5")
)

package router

import (
	"net/http"

	"github.com/rs/zerolog"

	"mystic-books/internal/auth"
	"mystic-books/internal/handler"
	"mystic-books/internal/middleware"
)

// Handlers bundles the per-resource handlers the router wires up.
type Handlers struct {
	User     *handler.UserHandler
	Book     *handler.BookHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Wishlist *handler.WishlistHandler
	Review   *handler.ReviewHandler
	Stats    *handler.StatsHandler
}

// route binds one method+pattern to a handler and the capability it
// requires. This table is the whole authorization policy; handlers and
// services only refine it with ownership checks.
type route struct {
	pattern    string
	capability middleware.Capability
	handler    http.HandlerFunc
}

// New creates the HTTP router with all routes and middleware configured.
func New(h Handlers, verifier auth.TokenVerifier, logger zerolog.Logger) http.Handler {
	routes := []route{
		// Users
		{"GET /users", middleware.Operator, h.User.List},
		{"GET /users/role/{email}", middleware.Anonymous, h.User.GetRole},
		{"POST /users", middleware.Anonymous, h.User.Register},
		{"PATCH /users/role/{id}", middleware.Operator, h.User.SetRole},

		// Books
		{"GET /books", middleware.Anonymous, h.Book.List},
		{"GET /books/{id}", middleware.Anonymous, h.Book.Get},
		{"POST /books", middleware.Operator, h.Book.Add},
		{"PATCH /books/{id}", middleware.Operator, h.Book.Update},
		{"DELETE /books/{id}", middleware.Operator, h.Book.Delete},

		// Orders
		{"GET /orders", middleware.Authenticated, h.Order.List},
		{"POST /orders", middleware.Authenticated, h.Order.Create},
		{"GET /orders/{id}", middleware.Authenticated, h.Order.Get},
		{"DELETE /orders/{id}", middleware.Operator, h.Order.Delete},
		{"PATCH /orders/cancel/{id}", middleware.Authenticated, h.Order.Cancel},
		{"PATCH /orders/status/{id}", middleware.Operator, h.Order.SetStatus},

		// Payments
		{"POST /payment-checkout-session", middleware.Authenticated, h.Payment.CreateCheckoutSession},
		{"PATCH /payment-success", middleware.Authenticated, h.Payment.Reconcile},
		{"GET /payments", middleware.Authenticated, h.Payment.ListPayments},

		// Wishlist
		{"GET /wishlist", middleware.Authenticated, h.Wishlist.List},
		{"POST /wishlist", middleware.Authenticated, h.Wishlist.Add},
		{"DELETE /wishlist/{id}", middleware.Authenticated, h.Wishlist.Remove},

		// Reviews
		{"GET /reviews", middleware.Anonymous, h.Review.List},
		{"POST /reviews", middleware.Authenticated, h.Review.Add},

		// Stats
		{"GET /stats", middleware.Operator, h.Stats.Summary},
	}

	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	for _, rt := range routes {
		mux.Handle(rt.pattern, middleware.Authorize(rt.capability, verifier, logger)(rt.handler))
	}

	// Apply middleware in order: Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}

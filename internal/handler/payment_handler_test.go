package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mystic-books/internal/middleware"
	"mystic-books/internal/model"
)

func TestPaymentHandler_CreateCheckoutSession(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	t.Run("returns the redirect URL", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CreateCheckoutSession", mock.Anything, testBuyer, orderID).
			Return(&model.CheckoutResponse{URL: "https://pay.example/cs_1"}, nil)

		h := NewPaymentHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.CreateCheckoutSession(rec, authedRequest(t, http.MethodPost, "/payment-checkout-session", map[string]string{"orderId": orderID.String()}, testBuyer))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "https://pay.example/cs_1")
	})

	t.Run("missing orderId", func(t *testing.T) {
		h := NewPaymentHandler(new(MockPaymentService), logger)
		rec := httptest.NewRecorder()
		h.CreateCheckoutSession(rec, authedRequest(t, http.MethodPost, "/payment-checkout-session", map[string]string{}, testBuyer))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewPaymentHandler(new(MockPaymentService), logger)

		req := httptest.NewRequest(http.MethodPost, "/payment-checkout-session", bytes.NewBufferString("{"))
		req = req.WithContext(middleware.WithIdentity(req.Context(), testBuyer))
		rec := httptest.NewRecorder()
		h.CreateCheckoutSession(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("already paid order", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("CreateCheckoutSession", mock.Anything, testBuyer, orderID).Return(nil, model.ErrAlreadyPaid)

		h := NewPaymentHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.CreateCheckoutSession(rec, authedRequest(t, http.MethodPost, "/payment-checkout-session", map[string]string{"orderId": orderID.String()}, testBuyer))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPaymentHandler_Reconcile(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("paid session", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, "cs_1").
			Return(&model.PaymentResult{Success: true, Message: "Payment recorded", TransactionID: "pi_123"}, nil)

		h := NewPaymentHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.Reconcile(rec, authedRequest(t, http.MethodPatch, "/payment-success?session_id=cs_1", nil, testBuyer))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.Contains(t, rec.Body.String(), "pi_123")
	})

	t.Run("unpaid session still answers 200", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, "cs_1").
			Return(&model.PaymentResult{Success: false, Message: "Payment not completed"}, nil)

		h := NewPaymentHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.Reconcile(rec, authedRequest(t, http.MethodPatch, "/payment-success?session_id=cs_1", nil, testBuyer))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("missing session_id", func(t *testing.T) {
		h := NewPaymentHandler(new(MockPaymentService), logger)
		rec := httptest.NewRecorder()
		h.Reconcile(rec, authedRequest(t, http.MethodPatch, "/payment-success", nil, testBuyer))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown order behind a paid session", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("Reconcile", mock.Anything, "cs_1").Return(nil, model.ErrOrderNotFound)

		h := NewPaymentHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.Reconcile(rec, authedRequest(t, http.MethodPatch, "/payment-success?session_id=cs_1", nil, testBuyer))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("empty result is an empty array", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("ListPayments", mock.Anything, testBuyer, "").Return(nil, nil)

		h := NewPaymentHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.ListPayments(rec, authedRequest(t, http.MethodGet, "/payments", nil, testBuyer))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("forbidden filter", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("ListPayments", mock.Anything, testBuyer, "b@y.com").Return(nil, model.ErrForbidden)

		h := NewPaymentHandler(svc, logger)
		rec := httptest.NewRecorder()
		h.ListPayments(rec, authedRequest(t, http.MethodGet, "/payments?email=b@y.com", nil, testBuyer))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

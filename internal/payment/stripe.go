package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mystic-books/internal/config"
)

// StripeClient implements Client against the Stripe checkout-session REST
// API. The base URL is injected so tests can point it at a local server.
type StripeClient struct {
	secretKey  string
	baseURL    string
	successURL string
	cancelURL  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewStripeClient creates a checkout client from configuration.
func NewStripeClient(cfg config.StripeConfig, logger zerolog.Logger) *StripeClient {
	return &StripeClient{
		secretKey:  cfg.SecretKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With().Str("client", "stripe").Logger(),
	}
}

// stripeSession is the subset of the session resource this service reads.
type stripeSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreateCheckoutSession registers a session with a single line item for the
// order amount. Order id and buyer email ride as session metadata.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.successURL+"?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", c.cancelURL)
	form.Set("customer_email", req.BuyerEmail)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	form.Set("metadata[orderId]", req.OrderID)
	form.Set("metadata[buyerEmail]", req.BuyerEmail)

	session, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("session_id", session.ID).
		Str("order_id", req.OrderID).
		Int64("amount_cents", req.AmountCents).
		Msg("checkout session created")

	return session, nil
}

// RetrieveSession reads a session's outcome and metadata back.
func (c *StripeClient) RetrieveSession(ctx context.Context, id string) (*Session, error) {
	return c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(id), nil)
}

func (c *StripeClient) do(ctx context.Context, method, path string, body io.Reader) (*Session, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	httpReq.SetBasicAuth(c.secretKey, "")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("stripe request failed")
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr stripeError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("type", apiErr.Error.Type).
				Str("message", apiErr.Error.Message).
				Msg("stripe API error")
			return nil, fmt.Errorf("stripe API error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe API error: unexpected status %d", resp.StatusCode)
	}

	var raw stripeSession
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode stripe response: %w", err)
	}

	return &Session{
		ID:            raw.ID,
		URL:           raw.URL,
		Paid:          raw.PaymentStatus == "paid",
		OrderID:       raw.Metadata["orderId"],
		BuyerEmail:    raw.Metadata["buyerEmail"],
		TransactionID: raw.PaymentIntent,
	}, nil
}

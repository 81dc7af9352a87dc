// Package payment talks to the Stripe Checkout REST API. The provider is a
// black box to the rest of the system: create a hosted session, redirect the
// customer, read the session and its payment intent back on the callback.
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

	"github.com/nikolayk812/storefront/internal/port"
)

const defaultBaseURL = "https://api.stripe.com"

type StripeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type Option func(*StripeClient)

func WithBaseURL(baseURL string) Option {
	return func(c *StripeClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *StripeClient) {
		c.client.Timeout = timeout
	}
}

func NewStripe(apiKey string, opts ...Option) (*StripeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is empty")
	}

	c := &StripeClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *StripeClient) CreateSession(ctx context.Context, req port.CheckoutSessionRequest) (port.CheckoutSession, error) {
	if len(req.LineItems) == 0 {
		return port.CheckoutSession{}, fmt.Errorf("line items are empty")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)

	for i, item := range req.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", strings.ToLower(item.Currency.String()))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][product_data][description]", item.Description)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &resp); err != nil {
		return port.CheckoutSession{}, fmt.Errorf("do: %w", err)
	}

	return resp.toPort(), nil
}

func (c *StripeClient) GetSession(ctx context.Context, id string) (port.CheckoutSession, error) {
	if id == "" {
		return port.CheckoutSession{}, fmt.Errorf("session id is empty")
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(id), nil, &resp); err != nil {
		return port.CheckoutSession{}, fmt.Errorf("do: %w", err)
	}

	return resp.toPort(), nil
}

func (c *StripeClient) GetPaymentIntent(ctx context.Context, id string) (port.PaymentIntent, error) {
	if id == "" {
		return port.PaymentIntent{}, fmt.Errorf("payment intent id is empty")
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil, &resp); err != nil {
		return port.PaymentIntent{}, fmt.Errorf("do: %w", err)
	}

	return port.PaymentIntent{ID: resp.ID, Status: resp.Status}, nil
}

type sessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentIntent string `json:"payment_intent"`
}

func (r sessionResponse) toPort() port.CheckoutSession {
	return port.CheckoutSession{
		ID:              r.ID,
		URL:             r.URL,
		PaymentIntentID: r.PaymentIntent,
	}
}

// do performs one API call with a single retry on transport errors and 5xx
// responses. 4xx responses are final.
func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		retry, err := c.doOnce(ctx, method, path, form, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}

	return lastErr
}

func (c *StripeClient) doOnce(ctx context.Context, method, path string, form url.Values, out any) (retriable bool, _ error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return true, fmt.Errorf("stripe responded %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return false, fmt.Errorf("stripe responded %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return false, fmt.Errorf("stripe responded %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("json.Decode: %w", err)
	}

	return false, nil
}

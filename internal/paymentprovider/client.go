// Package paymentprovider реализует клиент платежного процессора
// с API, совместимым со Stripe PaymentIntents.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/monoare/vigor-vista-server/internal/apperr"
)

// Client клиент платежного процессора.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
	newKey     func() string
}

// NewClient создаёт новый клиент. Пустой apiURL заменяется адресом Stripe.
func NewClient(secretKey, apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = "https://api.stripe.com"
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		secretKey:  secretKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		newKey:     uuid.NewString,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", c.newKey())
	return req, nil
}

// CreatePaymentIntent создает карточное платежное намерение на amount минимальных
// единиц валюты и возвращает client secret. Любой сбой провайдера оборачивает
// apperr.ErrPaymentProvider.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	const op = "paymentprovider.CreatePaymentIntent"

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Add("payment_method_types[]", "card")

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/payment_intents", form)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, apperr.ErrPaymentProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		msg := e.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("%s: %w: %s", op, apperr.ErrPaymentProvider, msg)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, apperr.ErrPaymentProvider, err)
	}
	if intent.ClientSecret == "" {
		return "", fmt.Errorf("%s: %w: empty client secret", op, apperr.ErrPaymentProvider)
	}
	return intent.ClientSecret, nil
}

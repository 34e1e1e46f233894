package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayClient talks to the Razorpay orders API. Unlike PayU there is no
// browser-side hash; orders are created server to server with basic auth.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewRazorpayClient(keyID, keySecret string, timeout time.Duration) *RazorpayClient {
	return &RazorpayClient{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    razorpayBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a gateway order. Amount is in paise.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*RazorpayOrder, error) {
	if receipt == "" {
		receipt = "rcpt_" + uuid.NewString()[:12]
	}

	payload, err := json.Marshal(map[string]any{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay order request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay order failed: status %d: %s", resp.StatusCode, body)
	}

	var order RazorpayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("razorpay order response: %w", err)
	}
	return &order, nil
}

// VerifyRazorpaySignature checks the checkout callback signature:
// HMAC-SHA256 over "<order_id>|<payment_id>" with the key secret.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

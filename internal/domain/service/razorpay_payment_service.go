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
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gmrportal/pkg/logger"
)

type RazorpayPaymentService struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayPaymentService(keyID, keySecret, baseURL string) *RazorpayPaymentService {
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}

	return &RazorpayPaymentService{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (s *RazorpayPaymentService) KeyID() string {
	return s.keyID
}

func (s *RazorpayPaymentService) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if s.keyID == "" || s.keySecret == "" {
		return nil, fmt.Errorf("razorpay credentials are not configured")
	}

	// receipts are capped at 40 characters by the gateway
	receipt := req.Receipt
	if len(receipt) > 40 {
		receipt = receipt[:40]
	}

	payload, err := json.Marshal(razorpayOrderRequest{
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.SetBasicAuth(s.keyID, s.keySecret)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr razorpayErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		logger.Warn("Razorpay order creation failed: status=%d code=%s description=%s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Description)
		return nil, fmt.Errorf("razorpay API error: status %d: %s", resp.StatusCode, apiErr.Error.Description)
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	logger.Info("Razorpay order created: %s (receipt %s)", orderResp.ID, receipt)
	return &Order{
		ID:          orderResp.ID,
		AmountMinor: orderResp.Amount,
		Currency:    orderResp.Currency,
		Status:      orderResp.Status,
	}, nil
}

// Signature computes hex(HMAC-SHA256(secret, orderID|paymentID)).
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *RazorpayPaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	expected := Signature(s.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

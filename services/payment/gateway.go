package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"fixkaro/config"
	"fixkaro/models"
)

// OrderGateway creates orders with the external payment authority.
type OrderGateway interface {
	CreateOrder(ctx context.Context, amount float64, receipt string) (*models.PaymentOrder, error)
}

// razorpayGateway talks to the Razorpay orders API over HTTP basic auth.
type razorpayGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewRazorpayGateway builds the production order gateway from configuration.
func NewRazorpayGateway() OrderGateway {
	return &razorpayGateway{
		baseURL:   config.AppConfig.PaymentAPIBase,
		keyID:     config.AppConfig.RazorpayKeyID,
		keySecret: config.AppConfig.RazorpayKeySecret,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type orderRequest struct {
	Amount         int64  `json:"amount"` // minor units
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder converts the rupee amount to paise and registers the order
// with the authority, using the job id as the receipt.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amount float64, receipt string) (*models.PaymentOrder, error) {
	body, err := json.Marshal(orderRequest{
		Amount:         int64(math.Round(amount * 100)),
		Currency:       "INR",
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: orders API returned %d", ErrGateway, resp.StatusCode)
	}

	var or orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	return &models.PaymentOrder{
		OrderID:  or.ID,
		Amount:   or.Amount,
		Currency: or.Currency,
		Receipt:  or.Receipt,
	}, nil
}

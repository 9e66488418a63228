package models

// PaymentOrder is the opaque order returned by the payment authority.
// Amount is in integer minor units (paise).
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// PaymentVerification is the settlement request produced by the client-side
// payment widget after the customer pays.
type PaymentVerification struct {
	OrderID   string  `json:"order_id" binding:"required"`
	PaymentID string  `json:"payment_id" binding:"required"`
	Signature string  `json:"signature" binding:"required"`
	JobID     string  `json:"job_id" binding:"required"`
	WorkerID  string  `json:"worker_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

package payment

import "fmt"

// PaymentError is a domain error with a stable code for branching.
type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PaymentError) Is(target error) bool {
	t, ok := target.(*PaymentError)
	return ok && t.Code == e.Code
}

var (
	// ErrInvalidSignature reports a settlement attempt whose signature was
	// not produced by the payment authority. Nothing is committed.
	ErrInvalidSignature = &PaymentError{Code: "invalidSignature", Message: "Invalid Signature"}
	// ErrJobNotPayable reports a job outside COMPLETED_PENDING_PAYMENT.
	ErrJobNotPayable = &PaymentError{Code: "jobNotPayable", Message: "job is not awaiting payment"}
	// ErrVerificationMismatch reports a signed verification whose worker or
	// amount does not match the job record.
	ErrVerificationMismatch = &PaymentError{Code: "validation", Message: "verification does not match the job record"}
	// ErrGateway reports a failure talking to the payment authority.
	ErrGateway = &PaymentError{Code: "gateway", Message: "payment gateway unavailable"}
)

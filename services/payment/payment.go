package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	jobRepo "fixkaro/database/repository/job"
	ledgerRepo "fixkaro/database/repository/ledger"
	"fixkaro/models"
	"fixkaro/realtime"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// SettlementService drives the two-phase payment protocol: order creation
// against the external authority, then signature-verified settlement.
type SettlementService interface {
	// CreateOrder obtains an opaque order for a job awaiting payment.
	CreateOrder(ctx context.Context, jobID string, amount float64) (*models.PaymentOrder, error)
	// VerifyAndSettle checks the widget's signature and, only on a match,
	// completes the job and credits the worker's ledger.
	VerifyAndSettle(ctx context.Context, v models.PaymentVerification) error
}

// DefaultSettlementService implements SettlementService.
type DefaultSettlementService struct {
	Gateway    OrderGateway
	JobRepo    jobRepo.JobRepository
	LedgerRepo ledgerRepo.LedgerRepository
	Hub        realtime.Publisher
	Logger     *zap.Logger
	// Secret is the server-held key shared with the payment authority.
	Secret string
}

func (s *DefaultSettlementService) CreateOrder(ctx context.Context, jobID string, amount float64) (*models.PaymentOrder, error) {
	if amount <= 0 {
		return nil, &PaymentError{Code: "validation", Message: "amount must be positive"}
	}
	j, err := s.JobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if j == nil || j.Status != models.JobCompletedPendingPayment {
		return nil, ErrJobNotPayable
	}
	return s.Gateway.CreateOrder(ctx, amount, jobID)
}

// signaturePayload is the exact byte string the authority signs.
func signaturePayload(orderID, paymentID string) string {
	return orderID + "|" + paymentID
}

// computeSignature returns the hex HMAC-SHA256 of orderId|paymentId under
// the shared secret.
func computeSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signaturePayload(orderID, paymentID)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyAndSettle recomputes the signature and compares in constant time.
// A mismatch commits nothing and the job stays payable for retry. On a
// match the job completes and one CREDIT is appended; a ledger failure
// after the job write is logged, not rolled back.
func (s *DefaultSettlementService) VerifyAndSettle(ctx context.Context, v models.PaymentVerification) error {
	expected := computeSignature(s.Secret, v.OrderID, v.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(v.Signature)) {
		s.Logger.Warn("payment signature mismatch",
			zap.String("jobID", v.JobID), zap.String("orderID", v.OrderID))
		return ErrInvalidSignature
	}

	// The signature only covers orderId|paymentId; the rest of the body is
	// client-supplied, so check it against the job record before settling.
	j, err := s.JobRepo.GetByID(v.JobID)
	if err != nil {
		return err
	}
	if j == nil || j.Status != models.JobCompletedPendingPayment {
		return ErrJobNotPayable
	}
	if j.WorkerID != v.WorkerID || j.Amount != v.Amount {
		s.Logger.Warn("payment verification does not match job record",
			zap.String("jobID", v.JobID), zap.String("workerID", v.WorkerID))
		return ErrVerificationMismatch
	}

	updated, err := s.JobRepo.Transition(v.JobID,
		[]models.JobStatus{models.JobCompletedPendingPayment},
		bson.M{"status": models.JobCompleted})
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrJobNotPayable
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		WorkerID:    v.WorkerID,
		JobID:       v.JobID,
		Amount:      v.Amount,
		Type:        models.TxnCredit,
		Status:      models.TxnCompleted,
		Description: fmt.Sprintf("Payment for Job %s (Ref: %s)", shortID(v.JobID), v.PaymentID),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.LedgerRepo.Append(txn); err != nil {
		s.Logger.Error("transaction append failed after job completion",
			zap.String("jobID", v.JobID), zap.Error(err))
	} else if s.Hub != nil {
		s.Hub.Publish(realtime.UserChannel(v.WorkerID), realtime.EventInsert, "transaction", txn.ID)
	}

	if s.Hub != nil {
		s.Hub.Publish(realtime.JobChannel(v.JobID), realtime.EventUpdate, "job", v.JobID)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

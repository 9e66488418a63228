package models

import "time"

// TransactionType marks the sign of a ledger entry.
type TransactionType string

const (
	TxnCredit TransactionType = "CREDIT"
	TxnDebit  TransactionType = "DEBIT"
)

// TransactionStatus tracks settlement of a ledger entry. A PENDING entry
// advances to COMPLETED or FAILED exactly once; entries are otherwise immutable.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnFailed    TransactionStatus = "FAILED"
)

// Transaction is one append-only wallet ledger entry. A worker's balance is
// derived by folding all non-FAILED entries, never stored.
type Transaction struct {
	ID          string            `bson:"id" json:"id"`
	WorkerID    string            `bson:"worker_id" json:"worker_id"`
	JobID       string            `bson:"job_id,omitempty" json:"job_id,omitempty"`
	Amount      float64           `bson:"amount" json:"amount"`
	Type        TransactionType   `bson:"type" json:"type"`
	Status      TransactionStatus `bson:"status" json:"status"`
	Description string            `bson:"description" json:"description"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `bson:"updated_at" json:"updated_at"`
}

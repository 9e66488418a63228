package ledgerRepo

import "fixkaro/models"

// LedgerRepository defines methods for wallet transaction data access.
// Transactions are append-only; the single permitted mutation is the
// one-shot advance of a PENDING entry to COMPLETED or FAILED.
type LedgerRepository interface {
	// Append inserts a new transaction record.
	Append(txn *models.Transaction) error
	// GetByID retrieves a transaction by its unique ID, or nil when absent.
	GetByID(id string) (*models.Transaction, error)
	// ListForWorker retrieves a worker's transactions, newest first.
	ListForWorker(workerID string) ([]models.Transaction, error)
	// ListWithdrawals retrieves every DEBIT transaction, newest first.
	ListWithdrawals() ([]models.Transaction, error)
	// Advance moves a transaction from PENDING to the given terminal status.
	// It returns false when the entry was not PENDING anymore.
	Advance(id string, to models.TransactionStatus) (bool, error)
}

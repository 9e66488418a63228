package wallet

import (
	"time"

	ledgerRepo "fixkaro/database/repository/ledger"
	"fixkaro/models"
	"fixkaro/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WalletService exposes the append-only ledger and its derived balance.
type WalletService interface {
	// Balance folds all non-FAILED transactions: CREDIT adds, DEBIT subtracts.
	Balance(workerID string) (float64, error)
	// Transactions lists a worker's ledger, newest first.
	Transactions(workerID string) ([]models.Transaction, error)
	// RequestWithdrawal validates and appends a PENDING DEBIT. Over-limit or
	// non-positive requests are rejected before any row is written.
	RequestWithdrawal(workerID string, amount float64) (*models.Transaction, error)
	// Withdrawals lists every DEBIT entry for the admin settlement queue.
	Withdrawals() ([]models.Transaction, error)
	// SettleWithdrawal advances a PENDING withdrawal to COMPLETED or FAILED,
	// exactly once.
	SettleWithdrawal(id string, approve bool) error
}

// DefaultWalletService implements WalletService.
type DefaultWalletService struct {
	Repo   ledgerRepo.LedgerRepository
	Hub    realtime.Publisher
	Logger *zap.Logger
}

// Balance derives the wallet value from the ledger on every call; it is
// never cached or stored, so it cannot drift from its transactions.
func (s *DefaultWalletService) Balance(workerID string) (float64, error) {
	txns, err := s.Repo.ListForWorker(workerID)
	if err != nil {
		return 0, err
	}
	return Fold(txns), nil
}

// Fold computes a balance from a transaction list. FAILED entries are
// excluded; PENDING debits already reduce the spendable balance so a worker
// cannot double-spend while a withdrawal is in review.
func Fold(txns []models.Transaction) float64 {
	var balance float64
	for _, t := range txns {
		if t.Status == models.TxnFailed {
			continue
		}
		switch t.Type {
		case models.TxnCredit:
			balance += t.Amount
		case models.TxnDebit:
			balance -= t.Amount
		}
	}
	return balance
}

func (s *DefaultWalletService) Transactions(workerID string) ([]models.Transaction, error) {
	return s.Repo.ListForWorker(workerID)
}

func (s *DefaultWalletService) RequestWithdrawal(workerID string, amount float64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	balance, err := s.Balance(workerID)
	if err != nil {
		return nil, err
	}
	if amount > balance {
		return nil, ErrInsufficientBalance
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		WorkerID:    workerID,
		Amount:      amount,
		Type:        models.TxnDebit,
		Status:      models.TxnPending,
		Description: "Withdrawal Request",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.Repo.Append(txn); err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.Publish(realtime.UserChannel(workerID), realtime.EventInsert, "transaction", txn.ID)
	}
	return txn, nil
}

func (s *DefaultWalletService) Withdrawals() ([]models.Transaction, error) {
	return s.Repo.ListWithdrawals()
}

func (s *DefaultWalletService) SettleWithdrawal(id string, approve bool) error {
	txn, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if txn == nil {
		return ErrTransactionNotFound
	}

	target := models.TxnCompleted
	if !approve {
		target = models.TxnFailed
	}
	advanced, err := s.Repo.Advance(id, target)
	if err != nil {
		return err
	}
	if !advanced {
		return ErrAlreadySettled
	}

	s.Logger.Info("withdrawal settled",
		zap.String("transactionID", id), zap.Bool("approved", approve))
	if s.Hub != nil {
		s.Hub.Publish(realtime.UserChannel(txn.WorkerID), realtime.EventUpdate, "transaction", id)
	}
	return nil
}

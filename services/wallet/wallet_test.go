package wallet

import (
	"sync"
	"testing"

	"fixkaro/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memLedger is an in-memory LedgerRepository with the same one-shot Advance
// contract as the Mongo implementation.
type memLedger struct {
	mu   sync.Mutex
	txns []*models.Transaction
}

func (r *memLedger) Append(txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.txns = append(r.txns, &cp)
	return nil
}

func (r *memLedger) GetByID(id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLedger) ListForWorker(workerID string) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, t := range r.txns {
		if t.WorkerID == workerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memLedger) ListWithdrawals() ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, t := range r.txns {
		if t.Type == models.TxnDebit {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memLedger) Advance(id string, to models.TransactionStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.ID == id {
			if t.Status != models.TxnPending {
				return false, nil
			}
			t.Status = to
			return true, nil
		}
	}
	return false, nil
}

func newWallet() (*DefaultWalletService, *memLedger) {
	ledger := &memLedger{}
	return &DefaultWalletService{Repo: ledger, Logger: zap.NewNop()}, ledger
}

func credit(ledger *memLedger, id, worker string, amount float64) {
	ledger.Append(&models.Transaction{
		ID: id, WorkerID: worker, Amount: amount,
		Type: models.TxnCredit, Status: models.TxnCompleted,
	})
}

func TestFoldExcludesFailedAndCountsPendingDebits(t *testing.T) {
	txns := []models.Transaction{
		{Type: models.TxnCredit, Status: models.TxnCompleted, Amount: 500},
		{Type: models.TxnCredit, Status: models.TxnCompleted, Amount: 250},
		{Type: models.TxnDebit, Status: models.TxnPending, Amount: 100},
		{Type: models.TxnDebit, Status: models.TxnFailed, Amount: 400},
		{Type: models.TxnCredit, Status: models.TxnFailed, Amount: 999},
	}

	// 500 + 250 - 100; both FAILED rows ignored.
	assert.Equal(t, 650.0, Fold(txns))
}

func TestBalanceIsDerivedFromLedger(t *testing.T) {
	svc, ledger := newWallet()
	credit(ledger, "t1", "w1", 350)
	credit(ledger, "t2", "w1", 150)
	credit(ledger, "t3", "other", 1000)

	balance, err := svc.Balance("w1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, balance)
}

func TestRequestWithdrawalRejectsBeforeInsert(t *testing.T) {
	svc, ledger := newWallet()
	credit(ledger, "t1", "w1", 200)

	_, err := svc.RequestWithdrawal("w1", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RequestWithdrawal("w1", -50)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RequestWithdrawal("w1", 300)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// A rejected request writes nothing.
	withdrawals, err := ledger.ListWithdrawals()
	require.NoError(t, err)
	assert.Empty(t, withdrawals)
}

func TestRequestWithdrawalAppendsPendingDebit(t *testing.T) {
	svc, ledger := newWallet()
	credit(ledger, "t1", "w1", 500)

	txn, err := svc.RequestWithdrawal("w1", 200)
	require.NoError(t, err)
	assert.Equal(t, models.TxnDebit, txn.Type)
	assert.Equal(t, models.TxnPending, txn.Status)

	// The pending debit already reduces the spendable balance.
	balance, err := svc.Balance("w1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, balance)

	_, err = svc.RequestWithdrawal("w1", 301)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestSettleWithdrawalExactlyOnce(t *testing.T) {
	svc, ledger := newWallet()
	credit(ledger, "t1", "w1", 500)

	txn, err := svc.RequestWithdrawal("w1", 200)
	require.NoError(t, err)

	require.NoError(t, svc.SettleWithdrawal(txn.ID, true))

	settled, err := ledger.GetByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TxnCompleted, settled.Status)

	// The second settlement of the same entry is refused.
	err = svc.SettleWithdrawal(txn.ID, false)
	assert.ErrorIs(t, err, ErrAlreadySettled)

	settled, err = ledger.GetByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TxnCompleted, settled.Status, "the rejected retry must not flip the status")
}

func TestSettleWithdrawalRejectionRestoresBalance(t *testing.T) {
	svc, ledger := newWallet()
	credit(ledger, "t1", "w1", 500)

	txn, err := svc.RequestWithdrawal("w1", 200)
	require.NoError(t, err)

	require.NoError(t, svc.SettleWithdrawal(txn.ID, false))

	// The FAILED debit no longer counts against the balance.
	balance, err := svc.Balance("w1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, balance)
}

func TestSettleWithdrawalUnknownTransaction(t *testing.T) {
	svc, _ := newWallet()

	err := svc.SettleWithdrawal("missing", true)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

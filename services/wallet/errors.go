package wallet

import "fmt"

// WalletError is a domain error with a stable code for branching.
type WalletError struct {
	Code    string
	Message string
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WalletError) Is(target error) bool {
	t, ok := target.(*WalletError)
	return ok && t.Code == e.Code
}

var (
	// ErrInvalidAmount reports a non-positive withdrawal request.
	ErrInvalidAmount = &WalletError{Code: "invalidAmount", Message: "amount must be positive"}
	// ErrInsufficientBalance reports a withdrawal exceeding the derived balance.
	ErrInsufficientBalance = &WalletError{Code: "insufficientBalance", Message: "requested amount exceeds wallet balance"}
	// ErrAlreadySettled reports a second settlement of the same withdrawal.
	ErrAlreadySettled = &WalletError{Code: "alreadySettled", Message: "transaction is no longer pending"}
	// ErrTransactionNotFound reports a missing ledger entry.
	ErrTransactionNotFound = &WalletError{Code: "transactionNotFound", Message: "transaction not found"}
)

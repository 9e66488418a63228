package handlers

import (
	"net/http"

	walletSvc "fixkaro/services/wallet"

	"github.com/gin-gonic/gin"
)

// WalletBalanceHandler returns the worker's derived balance.
func WalletBalanceHandler(svc walletSvc.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		balance, err := svc.Balance(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"balance": balance})
	}
}

// WalletTransactionsHandler lists the worker's ledger, newest first.
func WalletTransactionsHandler(svc walletSvc.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		txns, err := svc.Transactions(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": txns})
	}
}

// RequestWithdrawalHandler appends a PENDING withdrawal for the worker.
func RequestWithdrawalHandler(svc walletSvc.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Amount float64 `json:"amount" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		txn, err := svc.RequestWithdrawal(userID, input.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, txn)
	}
}

// ListWithdrawalsHandler returns every withdrawal for the admin queue.
func ListWithdrawalsHandler(svc walletSvc.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		txns, err := svc.Withdrawals()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"withdrawals": txns})
	}
}

// SettleWithdrawalHandler approves or rejects a pending withdrawal.
func SettleWithdrawalHandler(svc walletSvc.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Approve *bool `json:"approve" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := svc.SettleWithdrawal(c.Param("id"), *input.Approve); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Withdrawal settled"})
	}
}

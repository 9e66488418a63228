package handlers

import (
	"net/http"

	"fixkaro/models"
	paymentSvc "fixkaro/services/payment"

	"github.com/gin-gonic/gin"
)

// CreatePaymentOrderHandler obtains a payment order for a job awaiting
// payment. The returned order ID feeds the client-side payment widget.
func CreatePaymentOrderHandler(svc paymentSvc.SettlementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			JobID  string  `json:"job_id" binding:"required"`
			Amount float64 `json:"amount" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		order, err := svc.CreateOrder(c.Request.Context(), input.JobID, input.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// VerifyPaymentHandler settles a payment after checking its signature. A
// mismatch commits nothing; the job stays payable for retry.
func VerifyPaymentHandler(svc paymentSvc.SettlementService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v models.PaymentVerification
		if err := c.ShouldBindJSON(&v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := svc.VerifyAndSettle(c.Request.Context(), v); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment verified"})
	}
}

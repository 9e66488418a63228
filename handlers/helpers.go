package handlers

import (
	"errors"
	"net/http"

	"fixkaro/middleware"
	adminSvc "fixkaro/services/admin"
	catalogSvc "fixkaro/services/catalog"
	chatSvc "fixkaro/services/chat"
	jobSvc "fixkaro/services/job"
	paymentSvc "fixkaro/services/payment"
	profileSvc "fixkaro/services/profile"
	walletSvc "fixkaro/services/wallet"
	"fixkaro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or creates a new one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger, _ := zap.NewProduction()
	return logger
}

// currentUserID reads the identity placed in context by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// currentRole reads the role claim placed in context by the auth middleware.
func currentRole(c *gin.Context) string {
	v, _ := c.Get(middleware.CtxRole)
	role, _ := v.(string)
	return role
}

// domainError extracts the stable code and message from any service error.
func domainError(err error) (code, message string, ok bool) {
	var je *jobSvc.LifecycleError
	if errors.As(err, &je) {
		return je.Code, je.Message, true
	}
	var pe *paymentSvc.PaymentError
	if errors.As(err, &pe) {
		return pe.Code, pe.Message, true
	}
	var we *walletSvc.WalletError
	if errors.As(err, &we) {
		return we.Code, we.Message, true
	}
	var pre *profileSvc.ProfileError
	if errors.As(err, &pre) {
		return pre.Code, pre.Message, true
	}
	var ce *catalogSvc.CatalogError
	if errors.As(err, &ce) {
		return ce.Code, ce.Message, true
	}
	var che *chatSvc.ChatError
	if errors.As(err, &che) {
		return che.Code, che.Message, true
	}
	var ae *adminSvc.AdminError
	if errors.As(err, &ae) {
		return ae.Code, ae.Message, true
	}
	return "", "", false
}

// statusForCode maps domain error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case "validation", "invalidOTP", "invalidAmount", "insufficientBalance", "emptyMessage", "invalidSignature":
		return http.StatusBadRequest
	case "invalidCredentials":
		return http.StatusUnauthorized
	case "notPermitted", "suspended", "registrationClosed", "notParticipant", "workerNotEligible":
		return http.StatusForbidden
	case "jobNotFound", "profileNotFound", "categoryNotFound", "transactionNotFound":
		return http.StatusNotFound
	case "alreadyAccepted", "invalidTransition", "emailTaken", "alreadySettled", "jobNotPayable", "notPendingReview":
		return http.StatusConflict
	case "gateway":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates a service error into a JSON response. Errors with
// no domain code are treated as internal and their detail withheld.
func respondError(c *gin.Context, err error) {
	if code, message, ok := domainError(err); ok {
		c.JSON(statusForCode(code), gin.H{"error": message, "code": code})
		return
	}
	getLogger(c).Error("request failed", zap.Error(err))
	// Same wire shape as the panic recovery in utils.ErrorHandler.
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error",
		"An unexpected error occurred. Please try again later.")
}

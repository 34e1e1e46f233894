package handlers

import (
	"errors"
	"net/http"

	"astrorekha_backend/internal/logger"
	"astrorekha_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// PaymentStatus lets the frontend poll a transaction after returning from a
// gateway redirect.
func (h *Handler) PaymentStatus(c *gin.Context) {
	txnID := c.Param("txnId")

	payment, err := h.PaymentRepo.GetByTxnID(c.Request.Context(), txnID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		logger.Error("payment lookup failed", "txn_id", txnID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"txnId":  payment.TxnID,
		"status": payment.PaymentStatus,
		"type":   payment.Type,
		"amount": payment.Amount,
	})
}

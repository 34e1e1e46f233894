package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/http/middleware"
	"astrorekha_backend/internal/logger"
	"astrorekha_backend/internal/repository"
	"astrorekha_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type razorpayCreateRequest struct {
	Type      string `json:"type"`
	BundleID  string `json:"bundleId"`
	PackageID string `json:"packageId"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
}

// RazorpayCreateOrder resolves the item server-side and creates a gateway
// order. Razorpay amounts are in paise.
func (h *Handler) RazorpayCreateOrder(c *gin.Context) {
	var req razorpayCreateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if !domain.ValidPurchaseType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase type"})
		return
	}

	itemID := req.BundleID
	if itemID == "" {
		itemID = req.PackageID
	}

	pricing := h.Pricing.Resolve(c.Request.Context())
	item, err := service.ResolveItem(pricing, req.Type, itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amountPaise := item.Amount * 100

	notes := map[string]string{
		"userId": req.UserID,
		"type":   req.Type,
	}
	if item.BundleID != "" {
		notes["bundleId"] = item.BundleID
	}
	if item.Feature != "" {
		notes["feature"] = item.Feature
	}
	if item.Coins > 0 {
		notes["coins"] = fmt.Sprintf("%d", item.Coins)
	}

	suffix := req.UserID
	if suffix == "" {
		suffix = "anon"
	}
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	receipt := fmt.Sprintf("rcpt_%d_%s", time.Now().UnixMilli(), suffix)

	order, err := h.Razorpay.CreateOrder(c.Request.Context(), amountPaise, "INR", receipt, notes)
	if err != nil {
		logger.Error("razorpay order creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	payment := &domain.Payment{
		ID:            "pay_" + order.ID,
		Gateway:       domain.GatewayRazorpay,
		TxnID:         order.ID,
		UserID:        req.UserID,
		Type:          req.Type,
		ItemID:        item.ItemID,
		Feature:       item.Feature,
		Coins:         item.Coins,
		CustomerEmail: req.Email,
		Amount:        amountPaise,
		Currency:      "INR",
	}
	if err := h.PaymentRepo.Create(c.Request.Context(), payment); err != nil {
		logger.Error("failed to save payment record", "order_id", order.ID, "error", err)
	}

	middleware.PaymentsInitiated.WithLabelValues(domain.GatewayRazorpay, req.Type).Inc()

	c.JSON(http.StatusOK, gin.H{
		"orderId":     order.ID,
		"amount":      order.Amount,
		"currency":    order.Currency,
		"keyId":       h.Cfg.RazorpayKeyID,
		"description": item.ProductInfo,
	})
}

type razorpayVerifyRequest struct {
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// RazorpayVerify checks the checkout signature and fulfills the purchase.
// Unlike PayU, this gateway's signature is authoritative: a mismatch aborts.
func (h *Handler) RazorpayVerify(c *gin.Context) {
	var req razorpayVerifyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "bad request"})
		return
	}

	if req.RazorpayPaymentID == "" || req.RazorpayOrderID == "" || req.RazorpaySignature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing payment details"})
		return
	}

	if !service.VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, h.Cfg.RazorpayKeySecret) {
		logger.Warn("razorpay signature mismatch", "order_id", req.RazorpayOrderID)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid payment signature"})
		return
	}

	credited, err := h.Fulfillment.Fulfill(c.Request.Context(), req.RazorpayOrderID, req.RazorpayPaymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Unknown order"})
			return
		}
		logger.Error("razorpay fulfillment failed", "order_id", req.RazorpayOrderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Verification failed"})
		return
	}

	if credited {
		middleware.PaymentsFulfilled.WithLabelValues(domain.GatewayRazorpay).Inc()
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

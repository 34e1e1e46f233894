package handlers

import (
	"errors"
	"net/http"

	"astrorekha_backend/internal/domain"
	"astrorekha_backend/internal/logger"
	"astrorekha_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ABTestAssign returns the visitor's sticky variant, creating the default
// test on first contact. Query params: testId (optional), visitorId.
func (h *Handler) ABTestAssign(c *gin.Context) {
	testID := c.Query("testId")
	if testID == "" {
		testID = service.DefaultTestID
	}
	visitorID := c.Query("visitorId")

	assignment, err := h.ABTests.Assign(c.Request.Context(), testID, visitorID)
	if err != nil {
		logger.Error("ab test assignment failed", "test_id", testID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign variant"})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

type abTestUpdateRequest struct {
	TestID   string                    `json:"testId"`
	Name     string                    `json:"name"`
	Status   string                    `json:"status"`
	Variants map[string]domain.Variant `json:"variants"`
}

// ABTestUpdate applies an admin config change to a test.
func (h *Handler) ABTestUpdate(c *gin.Context) {
	var req abTestUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.TestID == "" {
		req.TestID = service.DefaultTestID
	}

	test, err := h.ABTests.Update(c.Request.Context(), req.TestID, req.Name, req.Status, req.Variants)
	if err != nil {
		if errors.Is(err, service.ErrBadWeights) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("ab test update failed", "test_id", req.TestID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update test"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "test": test})
}

type abTestEventRequest struct {
	TestID    string         `json:"testId"`
	Variant   string         `json:"variant"`
	EventType string         `json:"eventType"`
	VisitorID string         `json:"visitorId"`
	UserID    string         `json:"userId"`
	Metadata  map[string]any `json:"metadata"`
}

// ABTestTrack records a funnel event and bumps the variant counters.
func (h *Handler) ABTestTrack(c *gin.Context) {
	var req abTestEventRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.TestID == "" {
		req.TestID = service.DefaultTestID
	}
	if req.Variant == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant is required"})
		return
	}

	event := &domain.ABEvent{
		TestID:    req.TestID,
		Variant:   req.Variant,
		EventType: req.EventType,
		VisitorID: req.VisitorID,
		UserID:    req.UserID,
		Metadata:  req.Metadata,
	}
	if err := h.ABTests.Track(c.Request.Context(), event); err != nil {
		if errors.Is(err, service.ErrInvalidEventType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("ab event tracking failed", "test_id", req.TestID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ABTestStats returns the per-variant reports for a test.
// Query params: testId (optional).
func (h *Handler) ABTestStats(c *gin.Context) {
	testID := c.Query("testId")
	if testID == "" {
		testID = service.DefaultTestID
	}

	stats, err := h.ABTests.Stats(c.Request.Context(), testID)
	if err != nil {
		logger.Error("ab test stats failed", "test_id", testID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"testId": testID, "variants": stats})
}

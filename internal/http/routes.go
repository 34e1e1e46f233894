package http

import (
	"os"
	"strconv"
	"time"

	"astrorekha_backend/internal/config"
	"astrorekha_backend/internal/http/handlers"
	"astrorekha_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, cfg)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	// Payment endpoints get a tighter window than general reads.
	paymentRateLimit := 10
	if v := os.Getenv("PAYMENT_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			paymentRateLimit = n
		}
	}
	paymentRateWindow := time.Minute
	if v := os.Getenv("PAYMENT_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			paymentRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, paymentRateLimit, paymentRateWindow)

	// Legacy /api routes (kept for the deployed frontend)
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, paymentRateLimit, paymentRateWindow)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, paymentRateLimit int, paymentRateWindow time.Duration) {
	paymentRL := middleware.RedisRateLimit(paymentRateLimit, paymentRateWindow)

	// PayU checkout
	payu := api.Group("/payu")
	{
		payu.POST("/initiate-payment", paymentRL, h.PayUInitiate)
		payu.POST("/verify-payment", paymentRL, h.PayUVerify)
	}

	// Razorpay checkout
	razorpay := api.Group("/razorpay")
	{
		razorpay.POST("/create-order", paymentRL, h.RazorpayCreateOrder)
		razorpay.POST("/verify-payment", paymentRL, h.RazorpayVerify)
	}

	// Promo codes
	api.POST("/promo/validate", paymentRL, h.PromoValidate)

	// Public pricing config
	api.GET("/pricing", h.GetPricing)

	// A/B testing
	api.GET("/ab-test", h.ABTestAssign)
	api.POST("/ab-test", h.ABTestUpdate)
	api.POST("/ab-test/event", h.ABTestTrack)
	api.GET("/ab-test/event", h.ABTestStats)

	// Payment status polling after gateway redirects
	api.GET("/payment/:txnId", h.PaymentStatus)

	// User entitlements
	api.GET("/user/:id", h.GetUser)
	api.GET("/user-by-email", h.GetUserByEmail)

	// Dev tooling (password gated in the handler)
	api.POST("/dev/activate-tester", h.ActivateTester)

	// Admin dashboard
	api.POST("/admin/login", paymentRL, h.AdminLogin)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.GET("/revenue", h.AdminRevenue)
		admin.GET("/pricing", h.AdminGetPricing)
		admin.POST("/pricing", h.AdminSavePricing)
		admin.GET("/ab-tests", h.AdminListABTests)
	}
}

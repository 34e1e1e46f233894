package handlers

import (
	"astrorekha_backend/internal/config"
	"astrorekha_backend/internal/repository"
	"astrorekha_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB  *pgxpool.Pool
	Cfg *config.Config

	UserRepo    *repository.UserRepository
	PaymentRepo *repository.PaymentRepository
	AdminRepo   *repository.AdminRepository

	Pricing     *service.PricingService
	Promo       *service.PromoService
	ABTests     *service.ABTestService
	Revenue     *service.RevenueService
	Fulfillment *service.FulfillmentService
	Razorpay    *service.RazorpayClient
}

func NewHandler(db *pgxpool.Pool, cfg *config.Config) *Handler {
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	return &Handler{
		DB:          db,
		Cfg:         cfg,
		UserRepo:    userRepo,
		PaymentRepo: paymentRepo,
		AdminRepo:   repository.NewAdminRepository(db),
		Pricing:     service.NewPricingService(repository.NewPricingRepository(db)),
		Promo:       service.NewPromoService(repository.NewPromoRepository(db)),
		ABTests:     service.NewABTestService(repository.NewABTestRepository(db)),
		Revenue:     service.NewRevenueService(paymentRepo, userRepo),
		Fulfillment: service.NewFulfillmentService(db, paymentRepo, userRepo),
		Razorpay:    service.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeout),
	}
}

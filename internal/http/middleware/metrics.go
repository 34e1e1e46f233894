package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	PaymentsInitiated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_initiated_total",
			Help: "Checkout initiations by gateway and type",
		},
		[]string{"gateway", "type"},
	)
	PaymentsFulfilled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_fulfilled_total",
			Help: "Fulfilled payments by gateway",
		},
		[]string{"gateway"},
	)
	PayUHashMismatches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payu_hash_mismatches_total",
			Help: "PayU callbacks whose response hash did not verify",
		},
	)
	PromoValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_validations_total",
			Help: "Promo code validations by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(PaymentsInitiated)
	prometheus.MustRegister(PaymentsFulfilled)
	prometheus.MustRegister(PayUHashMismatches)
	prometheus.MustRegister(PromoValidations)
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel_booking", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel_booking", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	BookingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel_booking", Name: "booking_admissions_total", Help: "Booking admission results by outcome code."},
		[]string{"outcome"},
	)
	ReviewOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hotel_booking", Name: "review_submissions_total", Help: "Review submission results by outcome code."},
		[]string{"outcome"},
	)
	TxRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotel_booking", Name: "tx_retries_total", Help: "Transactions retried after a serialization failure."},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "hotel_booking", Name: "rate_limited_total", Help: "Requests rejected by the rate limiter."},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, BookingOutcomes, ReviewOutcomes, TxRetries, RateLimited)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveBooking records an admission result; outcome is "confirmed" or an error code.
func ObserveBooking(outcome string) {
	BookingOutcomes.WithLabelValues(outcome).Inc()
}

func ObserveReview(outcome string) {
	ReviewOutcomes.WithLabelValues(outcome).Inc()
}

func ObserveTxRetry() {
	TxRetries.Inc()
}

func ObserveRateLimited() {
	RateLimited.Inc()
}

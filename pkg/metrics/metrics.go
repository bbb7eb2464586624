package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "powerise", Name: "contact_submissions_total", Help: "Contact form submissions by outcome."},
		[]string{"outcome"},
	)
	PageCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "powerise", Name: "page_cache_lookups_total", Help: "Rendered page cache lookups by result."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "powerise", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "powerise", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ContactSubmissions)
	reg.MustRegister(PageCacheLookups)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	quotesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rfq_quotes_issued_total",
		Help: "Number of firm quotes signed and persisted",
	}, []string{"chain_id"})

	quotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rfq_quotes_rejected_total",
		Help: "Number of quote requests rejected, by error code",
	}, []string{"code"})

	pricesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rfq_prices_served_total",
		Help: "Number of indicative prices served",
	}, []string{"chain_id"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rfq_upstream_latency_seconds",
		Help:    "Latency of upstream pricing/strategy calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream"})
)

// QuoteIssued records a signed quote on a chain.
func QuoteIssued(chainID int) {
	quotesIssued.WithLabelValues(strconv.Itoa(chainID)).Inc()
}

// QuoteRejected records a rejected quote request by error code.
func QuoteRejected(code string) {
	quotesRejected.WithLabelValues(code).Inc()
}

// PriceServed records an indicative price response on a chain.
func PriceServed(chainID int) {
	pricesServed.WithLabelValues(strconv.Itoa(chainID)).Inc()
}

// ObserveUpstream records the latency of one upstream HTTP call.
func ObserveUpstream(upstream string, d time.Duration) {
	upstreamLatency.WithLabelValues(upstream).Observe(d.Seconds())
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

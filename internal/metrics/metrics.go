package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ContentType is the Prometheus text exposition content type.
const ContentType = "text/plain; version=0.0.4"

// Metrics holds the service collectors and the registry they are exposed from.
type Metrics struct {
	registry *prometheus.Registry

	PaymentsTotal  prometheus.Counter
	HTTPRequests   *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
}

// New creates a registry with all service collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PaymentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payment_service_payments_total",
			Help: "Total payments processed",
		}),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_service_http_requests_total",
				Help: "Total HTTP requests to payment-service",
			},
			[]string{"method", "path", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_service_request_latency_seconds",
				Help:    "Request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}

	m.registry.MustRegister(m.PaymentsTotal, m.HTTPRequests, m.RequestLatency)
	return m
}

// Registry returns the registry backing the scrape endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the scrape handler. The text format is always served with
// the ContentType header.
func (m *Metrics) Handler() http.Handler {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drop content negotiation so scrapers always get the text format.
		r.Header.Del("Accept")
		h.ServeHTTP(&contentTypeWriter{ResponseWriter: w}, r)
	})
}

// contentTypeWriter replaces the negotiated content type on successful scrapes.
type contentTypeWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *contentTypeWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if code == http.StatusOK {
			w.Header().Set("Content-Type", ContentType)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *contentTypeWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTPRequestsTotal счетчик HTTP запросов (method, path, status)
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration гистограмма длительности HTTP запросов
	HTTPRequestDuration *prometheus.HistogramVec

	// DBQueryDuration гистограмма длительности SQL запросов
	DBQueryDuration *prometheus.HistogramVec

	// DBConnections текущее состояние пула соединений (open, idle, in_use)
	DBConnections *prometheus.GaugeVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query duration in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_connections",
				Help:        "Current database connection pool state",
				ConstLabels: constLabels,
			},
			[]string{"state"},
		),
	}
}

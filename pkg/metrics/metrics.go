package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus-метрик сервиса.
// All methods are safe on a nil receiver so callers can run with metrics disabled.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	paymentsApplied   *prometheus.CounterVec
	ledgerRejections  *prometheus.CounterVec
	importRows        *prometheus.CounterVec
	negativeTotals    prometheus.Counter
	emailsSent        *prometheus.CounterVec
}

// New creates and registers all collectors on a dedicated registry
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections", Help: "Open DB connections", ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections", Help: "DB connections in use", ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections", Help: "Idle DB connections", ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count", Help: "Total connections waited for", ConstLabels: labels,
		}),
		paymentsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ledger_payments_applied_total",
			Help:        "Payment mutations folded into booking totals",
			ConstLabels: labels,
		}, []string{"operation"}),
		ledgerRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ledger_rejections_total",
			Help:        "Payment mutations rejected by ledger rules",
			ConstLabels: labels,
		}, []string{"reason"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "import_rows_total",
			Help:        "Spreadsheet rows processed by the importer",
			ConstLabels: labels,
		}, []string{"outcome"}),
		negativeTotals: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ledger_negative_totals_total",
			Help:        "Payment removals that left a negative booking total",
			ConstLabels: labels,
		}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "emails_sent_total",
			Help:        "Outbound e-mails by result",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.dbQueryDuration, m.dbOpenConns, m.dbInUseConns, m.dbIdleConns, m.dbWaitCount,
		m.paymentsApplied, m.ledgerRejections, m.importRows, m.negativeTotals, m.emailsSent,
	)

	return m
}

// Handler exposes the registry over HTTP
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry (tests gather from it)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetDBStats копирует статистику пула соединений в gauges
func (m *Metrics) SetDBStats(s sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(s.OpenConnections))
	m.dbInUseConns.Set(float64(s.InUse))
	m.dbIdleConns.Set(float64(s.Idle))
	m.dbWaitCount.Set(float64(s.WaitCount))
}

func (m *Metrics) ObservePayment(operation string) {
	if m == nil {
		return
	}
	m.paymentsApplied.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveLedgerRejection(reason string) {
	if m == nil {
		return
	}
	m.ledgerRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveImportRow(outcome string) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveNegativeTotal() {
	if m == nil {
		return
	}
	m.negativeTotals.Inc()
}

func (m *Metrics) ObserveEmail(result string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(result).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScanMetrics holds the alert engine metrics.
type ScanMetrics struct {
	// Runs
	ScanRunsTotal   prometheus.CounterVec
	ScanDuration    prometheus.HistogramVec
	ScanLastSuccess prometheus.Gauge

	// Scanner outcomes
	ScannerFailuresTotal   prometheus.CounterVec
	ScannerCandidatesTotal prometheus.CounterVec

	// Writes
	AlertsCreatedTotal        prometheus.CounterVec
	AlertsDeduplicatedTotal   prometheus.Counter
	SuppliersInactivatedTotal prometheus.CounterVec
	InactivationErrorsTotal   prometheus.Counter

	// Reactivation
	ReactivationsTotal prometheus.CounterVec
}

// NewScanMetrics registers the metrics on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewScanMetrics(reg prometheus.Registerer) *ScanMetrics {
	f := promauto.With(reg)
	return &ScanMetrics{
		ScanRunsTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplier_alert_scan_runs_total",
				Help: "Number of alert engine runs by trigger and outcome",
			},
			[]string{"trigger", "result"},
		),
		ScanDuration: *f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "supplier_alert_scan_duration_seconds",
				Help:    "Alert engine run duration",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"trigger"},
		),
		ScanLastSuccess: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "supplier_alert_scan_last_success_timestamp_seconds",
				Help: "Unix time of the last successful run",
			},
		),

		ScannerFailuresTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplier_alert_scanner_failures_total",
				Help: "Scanner executions that failed and were skipped",
			},
			[]string{"scanner"},
		),
		ScannerCandidatesTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplier_alert_scanner_candidates_total",
				Help: "Alert candidates proposed by each scanner before dedup",
			},
			[]string{"scanner"},
		),

		AlertsCreatedTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplier_alerts_created_total",
				Help: "Alerts written by type and category",
			},
			[]string{"alert_type", "alert_category"},
		),
		AlertsDeduplicatedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "supplier_alerts_deduplicated_total",
				Help: "Document alert candidates dropped because an open alert exists",
			},
		),
		SuppliersInactivatedTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suppliers_auto_inactivated_total",
				Help: "Suppliers inactivated automatically by rule",
			},
			[]string{"rule"},
		),
		InactivationErrorsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "supplier_inactivation_errors_total",
				Help: "Failed supplier status updates",
			},
		),

		ReactivationsTotal: *f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplier_reactivations_total",
				Help: "Manual reactivation attempts by result",
			},
			[]string{"result"},
		),
	}
}

func (m *ScanMetrics) RecordScanRun(trigger string, success bool, durationSeconds float64, finishedAtUnix float64) {
	result := "success"
	if !success {
		result = "error"
	}
	m.ScanRunsTotal.WithLabelValues(trigger, result).Inc()
	m.ScanDuration.WithLabelValues(trigger).Observe(durationSeconds)
	if success {
		m.ScanLastSuccess.Set(finishedAtUnix)
	}
}

func (m *ScanMetrics) RecordScannerFailure(scanner string) {
	m.ScannerFailuresTotal.WithLabelValues(scanner).Inc()
}

func (m *ScanMetrics) RecordScannerCandidates(scanner string, count int) {
	m.ScannerCandidatesTotal.WithLabelValues(scanner).Add(float64(count))
}

func (m *ScanMetrics) RecordAlertCreated(alertType, category string) {
	m.AlertsCreatedTotal.WithLabelValues(alertType, category).Inc()
}

func (m *ScanMetrics) RecordAlertsDeduplicated(count int) {
	m.AlertsDeduplicatedTotal.Add(float64(count))
}

func (m *ScanMetrics) RecordSupplierInactivated(rule string) {
	m.SuppliersInactivatedTotal.WithLabelValues(rule).Inc()
}

func (m *ScanMetrics) RecordInactivationError() {
	m.InactivationErrorsTotal.Inc()
}

func (m *ScanMetrics) RecordReactivation(result string) {
	m.ReactivationsTotal.WithLabelValues(result).Inc()
}

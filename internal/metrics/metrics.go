package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "hidro_"

	OutcomeOK         = "ok"
	OutcomeIncomplete = "incomplete"
	OutcomeInvalid    = "invalid"

	HistoryAdd    = "add"
	HistoryRemove = "remove"
	HistoryClear  = "clear"
	HistoryLoad   = "load"
)

var (
	registerOnce sync.Once

	evaluationsTotal  *prometheus.CounterVec
	evaluationLatency *prometheus.HistogramVec
	historyOpsTotal   *prometheus.CounterVec
	historyLength     prometheus.Gauge
	exportTotal       *prometheus.CounterVec
)

// Init registers the collectors with the default registry. Recording before
// Init is a no-op.
func Init() {
	registerOnce.Do(func() {
		evaluationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "evaluations_total",
				Help: "Total evaluations by category and outcome",
			},
			[]string{"category", "outcome"},
		)
		evaluationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "evaluation_latency_seconds",
				Help:    "Evaluation latency in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"category"},
		)
		historyOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "history_operations_total",
				Help: "Total history mutations by operation",
			},
			[]string{"op"},
		)
		historyLength = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "history_entries",
				Help: "Current number of history entries",
			},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "history_export_total",
				Help: "Total history exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			evaluationsTotal,
			evaluationLatency,
			historyOpsTotal,
			historyLength,
			exportTotal,
		)
	})
}

// ObserveEvaluation records one evaluation.
func ObserveEvaluation(category, outcome string, duration time.Duration) {
	if category == "" {
		category = "unknown"
	}
	if evaluationsTotal != nil {
		evaluationsTotal.WithLabelValues(category, outcome).Inc()
	}
	if evaluationLatency != nil {
		evaluationLatency.WithLabelValues(category).Observe(duration.Seconds())
	}
}

// ObserveHistory records a history operation and the resulting length.
func ObserveHistory(op string, length int) {
	if historyOpsTotal != nil {
		historyOpsTotal.WithLabelValues(op).Inc()
	}
	if historyLength != nil {
		historyLength.Set(float64(length))
	}
}

// IncExport counts an export attempt.
func IncExport(format string, ok bool) {
	result := "success"
	if !ok {
		result = "error"
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
}

// Package metrics exposes Prometheus metrics for ROI calculations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sentratech/roi-engine/internal/roi"
)

// Registry is the custom prometheus registry for the service.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// CalculationsTotal counts calculations by mode and outcome (profit, loss, even).
var CalculationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "roi",
	Name:      "calculations_total",
	Help:      "ROI calculations by mode and outcome",
}, []string{"mode", "outcome"})

// CalculationErrorsTotal counts rejected calculations by error kind.
var CalculationErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "roi",
	Name:      "calculation_errors_total",
	Help:      "Rejected ROI calculations by error kind",
}, []string{"kind"})

// CalculationDurationSeconds tracks engine time per calculation.
var CalculationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "roi",
	Name:      "calculation_duration_seconds",
	Help:      "Time taken to compute one ROI report",
	Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01},
})

// ReportsSavedTotal counts persisted report snapshots.
var ReportsSavedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "roi",
	Name:      "reports_saved_total",
	Help:      "ROI report snapshots saved",
})

// ObserveCalculation records one engine call.
func ObserveCalculation(result roi.Result, err error, elapsed time.Duration) {
	CalculationDurationSeconds.Observe(elapsed.Seconds())
	if err != nil {
		CalculationErrorsTotal.WithLabelValues(roi.ErrorKind(err)).Inc()
		return
	}
	CalculationsTotal.WithLabelValues(string(result.Mode), Outcome(result)).Inc()
}

// Outcome labels a result as profit, loss or even.
func Outcome(r roi.Result) string {
	switch {
	case r.IsProfitable:
		return "profit"
	case r.IsCostIncrease:
		return "loss"
	default:
		return "even"
	}
}

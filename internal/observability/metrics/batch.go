package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/kyc-document-validator/internal/core/domain"
)

const namespace = "kyc_validator"

// NewRegistry is the private registry shared by the HTTP and batch metrics.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// BatchMetrics implements ports.BatchObserver. It is safe for concurrent use.
type BatchMetrics struct {
	documentsTotal   *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	batchesTotal     prometheus.Counter
	checklistTotal   *prometheus.CounterVec
	complianceRate   prometheus.Gauge
}

func NewBatchMetrics(registry prometheus.Registerer) *BatchMetrics {
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Analyzed documents by classified type and quality status.",
		},
		[]string{"doc_type", "status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_analysis_seconds",
			Help:      "Per-document extraction and analysis duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)
	batchesTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Completed batch runs.",
		},
	)
	checklistTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checklist_entries_total",
			Help:      "Checklist rows produced by status.",
		},
		[]string{"status"},
	)
	complianceRate := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_compliance_rate",
			Help:      "Compliance rate of the most recent batch, 0-100.",
		},
	)

	registry.MustRegister(documentsTotal, analysisDuration, batchesTotal, checklistTotal, complianceRate)

	return &BatchMetrics{
		documentsTotal:   documentsTotal,
		analysisDuration: analysisDuration,
		batchesTotal:     batchesTotal,
		checklistTotal:   checklistTotal,
		complianceRate:   complianceRate,
	}
}

func (m *BatchMetrics) ObserveDocument(outcome domain.Outcome, duration time.Duration) {
	result := outcome.Result
	m.documentsTotal.WithLabelValues(string(result.DocType), string(result.Status)).Inc()

	label := "ok"
	switch {
	case domain.IsKind(outcome.Failure, domain.ErrExtractionFailed):
		label = "extraction_failed"
	case outcome.Failure != nil:
		label = "processing_failed"
	}
	m.analysisDuration.WithLabelValues(label).Observe(duration.Seconds())
}

func (m *BatchMetrics) ObserveBatch(report *domain.BatchReport) {
	m.batchesTotal.Inc()
	for _, entry := range report.Checklist {
		m.checklistTotal.WithLabelValues(string(entry.Status)).Inc()
	}
	m.complianceRate.Set(report.Summary.ComplianceRate)
}

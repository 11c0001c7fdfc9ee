package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DealMetrics holds all pipeline metrics. A nil *DealMetrics disables
// recording, which keeps engine tests free of a registry.
type DealMetrics struct {
	ValidationsTotal      prometheus.CounterVec
	ValidationErrorsTotal prometheus.CounterVec

	ConflictScansTotal     prometheus.Counter
	ConflictsDetectedTotal prometheus.CounterVec

	PriceCalculationsTotal prometheus.Counter
	DiscountAmountTotal    prometheus.Counter

	ApprovalActionsTotal prometheus.CounterVec
	BulkApprovalSize     prometheus.Histogram
	BulkApprovalFailures prometheus.Counter
}

func NewDealMetrics() *DealMetrics {
	return &DealMetrics{
		ValidationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_validations_total",
				Help: "Deal validations run, labelled by outcome",
			},
			[]string{"outcome"},
		),
		ValidationErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_validation_errors_total",
				Help: "Validation errors by stable issue code",
			},
			[]string{"code"},
		),
		ConflictScansTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_conflict_scans_total",
				Help: "Conflict detection runs",
			},
		),
		ConflictsDetectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_conflicts_detected_total",
				Help: "Conflicts detected by type and severity",
			},
			[]string{"type", "severity"},
		),
		PriceCalculationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_price_calculations_total",
				Help: "Price calculations performed",
			},
		),
		DiscountAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_discount_amount_total",
				Help: "Total per-unit discount granted across calculations",
			},
		),
		ApprovalActionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "deal_approval_actions_total",
				Help: "Approval actions processed by action",
			},
			[]string{"action"},
		),
		BulkApprovalSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "deal_bulk_approval_batch_size",
				Help:    "Batch sizes submitted to bulk approval",
				Buckets: []float64{1, 5, 10, 25, 50, 100},
			},
		),
		BulkApprovalFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "deal_bulk_approval_failures_total",
				Help: "Deals that failed inside bulk approval batches",
			},
		),
	}
}

func (m *DealMetrics) RecordValidation(isValid bool) {
	outcome := "valid"
	if !isValid {
		outcome = "invalid"
	}
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
}

func (m *DealMetrics) RecordValidationError(code string) {
	m.ValidationErrorsTotal.WithLabelValues(code).Inc()
}

func (m *DealMetrics) RecordConflictScan() {
	m.ConflictScansTotal.Inc()
}

func (m *DealMetrics) RecordConflictDetected(conflictType, severity string) {
	m.ConflictsDetectedTotal.WithLabelValues(conflictType, severity).Inc()
}

func (m *DealMetrics) RecordPriceCalculation(unitDiscount float64) {
	m.PriceCalculationsTotal.Inc()
	if unitDiscount > 0 {
		m.DiscountAmountTotal.Add(unitDiscount)
	}
}

func (m *DealMetrics) RecordApprovalAction(action string) {
	m.ApprovalActionsTotal.WithLabelValues(action).Inc()
}

func (m *DealMetrics) RecordBulkApproval(batchSize, processed int) {
	m.BulkApprovalSize.Observe(float64(batchSize))
	if failed := batchSize - processed; failed > 0 {
		m.BulkApprovalFailures.Add(float64(failed))
	}
}

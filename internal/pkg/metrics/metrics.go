// Package metrics exposes the Prometheus collectors of the slot service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// SlotMetrics counts slot assignment outcomes.
type SlotMetrics struct {
	assignments      *prometheus.CounterVec
	rejections       *prometheus.CounterVec
	multipleOpen     prometheus.Counter
	reconcileRepairs prometheus.Counter
	publishFailures  *prometheus.CounterVec
}

// NewSlotMetrics creates the collectors and registers them with reg.
// Registering the same names twice on one registry is an error.
func NewSlotMetrics(reg prometheus.Registerer) (*SlotMetrics, error) {
	m := &SlotMetrics{
		assignments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_assignments_total",
				Help: "Successful slot assignment operations",
			},
			[]string{"operation"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_assignment_rejections_total",
				Help: "Slot assignment operations rejected by a business rule",
			},
			[]string{"operation", "reason"},
		),
		multipleOpen: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slot_history_multiple_open_total",
			Help: "Unassignments that found more than one open history entry for the order",
		}),
		reconcileRepairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slot_reconcile_repairs_total",
			Help: "Slots and orders changed by reconciliation",
		}),
		publishFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slot_event_publish_failures_total",
				Help: "Slot events that could not be delivered",
			},
			[]string{"sink"},
		),
	}

	if err := errors.Join(
		reg.Register(m.assignments),
		reg.Register(m.rejections),
		reg.Register(m.multipleOpen),
		reg.Register(m.reconcileRepairs),
		reg.Register(m.publishFailures),
	); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *SlotMetrics) OrderAssigned() {
	m.assignments.WithLabelValues("assign").Inc()
}

func (m *SlotMetrics) OrderUnassigned() {
	m.assignments.WithLabelValues("unassign").Inc()
}

// Rejected records a business-rule failure; reason is a short stable label.
func (m *SlotMetrics) Rejected(operation, reason string) {
	m.rejections.WithLabelValues(operation, reason).Inc()
}

func (m *SlotMetrics) MultipleOpenHistory() {
	m.multipleOpen.Inc()
}

func (m *SlotMetrics) Reconciled(repairs int) {
	m.reconcileRepairs.Add(float64(repairs))
}

func (m *SlotMetrics) PublishFailed(sink string) {
	m.publishFailures.WithLabelValues(sink).Inc()
}

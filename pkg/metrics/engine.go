package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics contadores del motor de asignación y ciclo de vida de pedidos.
// Un *EngineMetrics nil o construido sin registerer es un no-op.
type EngineMetrics struct {
	ordersCreated  *prometheus.CounterVec
	lineOutcomes   *prometheus.CounterVec
	unitsAllocated *prometheus.CounterVec
	unitsRestored  *prometheus.CounterVec
	statusChanges  *prometheus.CounterVec
	txConflicts    prometheus.Counter
}

// NewEngineMetrics registra las métricas en el registerer indicado.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	m := &EngineMetrics{
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Pedidos confirmados por pool de stock.",
		}, []string{"pool"}),
		lineOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_lines_total",
			Help: "Líneas de pedido por resultado de asignación.",
		}, []string{"pool", "status"}),
		unitsAllocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_units_allocated_total",
			Help: "Unidades descontadas del stock por pedidos.",
		}, []string{"pool"}),
		unitsRestored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_units_restored_total",
			Help: "Unidades devueltas al stock por rechazo o borrado de pedidos.",
		}, []string{"pool"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "Cambios de estado aplicados.",
		}, []string{"from", "to"}),
		txConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_tx_conflicts_total",
			Help: "Unidades de trabajo abortadas por deadlock o serialización.",
		}),
	}
	reg.MustRegister(m.ordersCreated, m.lineOutcomes, m.unitsAllocated, m.unitsRestored, m.statusChanges, m.txConflicts)
	return m
}

// OrderCreated cuenta un pedido confirmado.
func (m *EngineMetrics) OrderCreated(pool string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(pool)).Inc()
}

// LineAllocated cuenta una línea y las unidades asignadas.
func (m *EngineMetrics) LineAllocated(pool, status string, units int64) {
	if m == nil || m.lineOutcomes == nil {
		return
	}
	pool = normalizeLabel(pool)
	m.lineOutcomes.WithLabelValues(pool, normalizeLabel(status)).Inc()
	if units > 0 {
		m.unitsAllocated.WithLabelValues(pool).Add(float64(units))
	}
}

// StockRestored cuenta unidades devueltas.
func (m *EngineMetrics) StockRestored(pool string, units int64) {
	if m == nil || m.unitsRestored == nil || units <= 0 {
		return
	}
	m.unitsRestored.WithLabelValues(normalizeLabel(pool)).Add(float64(units))
}

// StatusChanged cuenta una transición de estado efectiva.
func (m *EngineMetrics) StatusChanged(from, to string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// TxConflict cuenta un aborto por conflicto de concurrencia.
func (m *EngineMetrics) TxConflict() {
	if m == nil || m.txConflicts == nil {
		return
	}
	m.txConflicts.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

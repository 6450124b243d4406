package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)

	m.OrderCreated("parts_stock")
	m.LineAllocated("parts_stock", "Partial Fulfillment", 10)
	m.LineAllocated("parts_stock", "Out of Stock", 0)
	m.StockRestored("parts_stock", 10)
	m.StatusChanged("Pending", "Rejected")
	m.TxConflict()

	assert.Equal(t, 1.0, counterValue(t, reg, "orders_created_total", map[string]string{"pool": "parts_stock"}))
	assert.Equal(t, 10.0, counterValue(t, reg, "stock_units_allocated_total", map[string]string{"pool": "parts_stock"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "order_lines_total", map[string]string{"pool": "parts_stock", "status": "Out of Stock"}))
	assert.Equal(t, 10.0, counterValue(t, reg, "stock_units_restored_total", map[string]string{"pool": "parts_stock"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "order_status_changes_total", map[string]string{"from": "Pending", "to": "Rejected"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "stock_tx_conflicts_total", nil))
}

func TestEngineMetrics_NilEsNoOp(t *testing.T) {
	var m *EngineMetrics
	assert.NotPanics(t, func() {
		m.OrderCreated("x")
		m.LineAllocated("x", "y", 1)
		m.StockRestored("x", 1)
		m.StatusChanged("a", "b")
		m.TxConflict()
	})
	assert.NotPanics(t, func() { NewEngineMetrics(nil).OrderCreated("x") })
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func labelsMatch(metric *dto.Metric, want map[string]string) bool {
	if len(metric.GetLabel()) != len(want) {
		return false
	}
	for _, lp := range metric.GetLabel() {
		if want[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}

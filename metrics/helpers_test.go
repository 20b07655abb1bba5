package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

var errTestSentinel = errors.New("metrics: test sentinel error")

func counterGaugeValue(g prometheus.Gauge) float64 {
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		panic(err)
	}
	return m.GetGauge().GetValue()
}

func testutilCounterSum(t *testing.T, c *Collector, eventType string) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.EventsTotal.WithLabelValues(eventType).Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetricsCollector instruments trip simulations.
type SimulationMetricsCollector struct {
	simulationsTotal   *prometheus.CounterVec
	simulationDuration prometheus.Histogram
	tripDays           prometheus.Histogram
}

// NewSimulationMetricsCollector creates the simulation collectors.
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "runs_total",
				Help:      "Total trip simulations by outcome",
			},
			[]string{"outcome"},
		),
		simulationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "duration_seconds",
				Help:      "Wall-clock duration of a trip simulation",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
		),
		tripDays: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "trip_days",
				Help:      "Calendar days per generated schedule",
				Buckets:   []float64{1, 2, 3, 4, 5, 7, 10, 14},
			},
		),
	}
}

// Register registers the collectors with the package registry.
func (c *SimulationMetricsCollector) Register() error {
	for _, collector := range []prometheus.Collector{
		c.simulationsTotal,
		c.simulationDuration,
		c.tripDays,
	} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// ObserveSimulation records one finished (or rejected) simulation.
func (c *SimulationMetricsCollector) ObserveSimulation(outcome string, totalDays int, elapsed time.Duration) {
	c.simulationsTotal.WithLabelValues(outcome).Inc()
	c.simulationDuration.Observe(elapsed.Seconds())
	if totalDays > 0 {
		c.tripDays.Observe(float64(totalDays))
	}
}

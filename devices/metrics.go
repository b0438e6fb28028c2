package devices

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "qserverd"

type registryCollector struct {
	countDesc    *prometheus.Desc
	loadTimeDesc *prometheus.Desc
	registry     *Registry
}

// NewRegistryCollector returns a Collector exposing device registry
// statistics.
func NewRegistryCollector(r *Registry) prometheus.Collector {
	var (
		subsystem  = "devices"
		labelNames = []string{"type"}
	)

	return &registryCollector{
		countDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "registered"),
			"Number of registered devices by type",
			labelNames,
			nil,
		),
		loadTimeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "load_time_seconds"),
			"Time of the last registry load",
			nil,
			nil,
		),
		registry: r,
	}
}

func (c *registryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.countDesc
	ch <- c.loadTimeDesc
}

func (c *registryCollector) Collect(ch chan<- prometheus.Metric) {
	counts := make(map[string]int)
	for _, def := range c.registry.All() {
		counts[def.DeviceType]++
	}
	for deviceType, count := range counts {
		ch <- prometheus.MustNewConstMetric(c.countDesc, prometheus.GaugeValue, float64(count), deviceType)
	}

	if t := c.registry.LoadedAt(); !t.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.loadTimeDesc, prometheus.GaugeValue, float64(t.Unix()))
	}
}

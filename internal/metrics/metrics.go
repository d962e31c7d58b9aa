// Package metrics exports controller state to Prometheus. The collector
// reads tracker snapshots on scrape, so the scheduler loop never touches
// a metrics API directly.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweeney/aircon-watchdog/internal/logic"
	"github.com/sweeney/aircon-watchdog/internal/status"
)

const namespace = "aircon"

// Collector implements prometheus.Collector over a status.Tracker.
type Collector struct {
	tracker *status.Tracker

	stateDesc      *prometheus.Desc
	pendingDesc    *prometheus.Desc
	armedDesc      *prometheus.Desc
	haltedDesc     *prometheus.Desc
	resetCountDesc *prometheus.Desc
	appliedDesc    *prometheus.Desc
	rejectedDesc   *prometheus.Desc
	faultsDesc     *prometheus.Desc
	feedsDesc      *prometheus.Desc
	uptimeDesc     *prometheus.Desc
}

// NewCollector creates a Collector reading from the given tracker.
func NewCollector(tracker *status.Tracker) *Collector {
	return &Collector{
		tracker: tracker,

		stateDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "state"),
			"Current appliance state (1 for the active state, 0 otherwise)",
			[]string{"state"}, nil,
		),
		pendingDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "ir_pending"),
			"Whether an IR transmission is in flight",
			nil, nil,
		),
		armedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "watchdog", "armed"),
			"Whether the hardware watchdog is armed",
			nil, nil,
		),
		haltedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "halted"),
			"Whether a terminal fault branch has been entered",
			nil, nil,
		),
		resetCountDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "watchdog", "reset_count"),
			"Watchdog resets recorded in the fault diagnostics store",
			nil, nil,
		),
		appliedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "commands", "applied_total"),
			"Total transitions applied since startup",
			nil, nil,
		),
		rejectedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "commands", "rejected_total"),
			"Total transitions rejected since startup",
			nil, nil,
		),
		faultsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "faults_total"),
			"Terminal fault branches entered since startup",
			nil, nil,
		),
		feedsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "watchdog", "feeds_total"),
			"Watchdog feeds since startup",
			nil, nil,
		),
		uptimeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "uptime_seconds"),
			"Seconds since the daemon started",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.stateDesc
	ch <- c.pendingDesc
	ch <- c.armedDesc
	ch <- c.haltedDesc
	ch <- c.resetCountDesc
	ch <- c.appliedDesc
	ch <- c.rejectedDesc
	ch <- c.faultsDesc
	ch <- c.feedsDesc
	ch <- c.uptimeDesc
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.tracker.Snapshot()

	for s := logic.StateOff; s < logic.NumStates; s++ {
		v := 0.0
		if s == snap.State {
			v = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.stateDesc, prometheus.GaugeValue, v, s.String())
	}
	ch <- prometheus.MustNewConstMetric(c.pendingDesc, prometheus.GaugeValue, boolToFloat(snap.Pending))
	ch <- prometheus.MustNewConstMetric(c.armedDesc, prometheus.GaugeValue, boolToFloat(snap.Armed))
	ch <- prometheus.MustNewConstMetric(c.haltedDesc, prometheus.GaugeValue, boolToFloat(snap.Halted))
	ch <- prometheus.MustNewConstMetric(c.resetCountDesc, prometheus.GaugeValue, float64(snap.Fault.ResetCount))
	ch <- prometheus.MustNewConstMetric(c.appliedDesc, prometheus.CounterValue, float64(snap.Counters.Applied))
	ch <- prometheus.MustNewConstMetric(c.rejectedDesc, prometheus.CounterValue, float64(snap.Counters.Rejected))
	ch <- prometheus.MustNewConstMetric(c.faultsDesc, prometheus.CounterValue, float64(snap.Counters.Faults))
	ch <- prometheus.MustNewConstMetric(c.feedsDesc, prometheus.CounterValue, float64(snap.Counters.Feeds))
	ch <- prometheus.MustNewConstMetric(c.uptimeDesc, prometheus.GaugeValue, snap.Uptime().Seconds())
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// Handler returns an HTTP handler exposing the collector on a private
// registry, for mounting at /metrics.
func Handler(tracker *status.Tracker) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(tracker))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the signage metrics on a private registry
type Collector struct {
	reg *prometheus.Registry

	Refreshes     *prometheus.CounterVec // result label: loaded|error|superseded
	FetchDuration prometheus.Histogram
	Trips         prometheus.Gauge

	Callouts prometheus.Gauge
	LiveMode prometheus.Gauge

	BoardsPublished  prometheus.Counter
	BoardPublishErrs prometheus.Counter
	PublishDuration  prometheus.Histogram
	NATSConnected    prometheus.Gauge

	ClockInterval prometheus.Gauge // seconds
}

func NewCollector(clockInterval time.Duration) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signage_timetable_refreshes_total",
			Help: "Timetable refreshes by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signage_timetable_fetch_duration_seconds",
			Help:    "Duration to fetch and normalize a timetable file.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		Trips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signage_trips",
			Help: "Number of trips in the active timetable.",
		}),
		Callouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signage_callouts",
			Help: "Number of callouts on the current board.",
		}),
		LiveMode: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signage_live_mode",
			Help: "1 if the board follows the wall clock, 0 in manual mode.",
		}),
		BoardsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signage_boards_published_total",
			Help: "Total boards published.",
		}),
		BoardPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signage_board_publish_errors_total",
			Help: "Total board publish errors.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signage_publish_duration_seconds",
			Help:    "Duration to marshal and publish a board.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signage_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		ClockInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signage_clock_interval_seconds",
			Help: "Clock driver interval in seconds.",
		}),
	}

	reg.MustRegister(
		c.Refreshes, c.FetchDuration, c.Trips,
		c.Callouts, c.LiveMode,
		c.BoardsPublished, c.BoardPublishErrs, c.PublishDuration, c.NATSConnected,
		c.ClockInterval,
	)

	c.ClockInterval.Set(clockInterval.Seconds())
	c.LiveMode.Set(1)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// ObserveRefresh records the outcome of a timetable refresh
func (c *Collector) ObserveRefresh(result string, d time.Duration) {
	c.Refreshes.WithLabelValues(result).Inc()
	c.FetchDuration.Observe(d.Seconds())
}

func (c *Collector) SetTripCount(n int) { c.Trips.Set(float64(n)) }

func (c *Collector) SetCallouts(n int) { c.Callouts.Set(float64(n)) }

func (c *Collector) SetLive(live bool) { c.LiveMode.Set(boolToFloat(live)) }

// ObservePublish counts a board publication attempt
func (c *Collector) ObservePublish(err error) {
	if err != nil {
		c.BoardPublishErrs.Inc()
		return
	}
	c.BoardsPublished.Inc()
}

func (c *Collector) PublishObserve(d time.Duration) { c.PublishDuration.Observe(d.Seconds()) }

func (c *Collector) NATSSetConnected(connected bool) { c.NATSConnected.Set(boolToFloat(connected)) }

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

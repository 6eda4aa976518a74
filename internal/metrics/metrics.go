// Package metrics exposes sampler and channel values as Prometheus collectors.
package metrics

import (
	"context"
	"net/http"

	"hvac_monitor/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hvac"

type Metrics struct {
	ticks       prometheus.Counter
	readErrors  prometheus.Counter
	sinkErrors  *prometheus.CounterVec
	csvRows     prometheus.Counter
	channel     *prometheus.GaugeVec
	switchState prometheus.Gauge
	lastUpdate  prometheus.Gauge
	samplingUp  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers all collectors on reg. Pass a fresh registry in tests.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sampler_ticks_total",
			Help:      "Completed sampling ticks.",
		}),
		readErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "device_read_errors_total",
			Help:      "Device read failures.",
		}),
		sinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failed sink publishes by sink name.",
		}, []string{"sink"}),
		csvRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "csv_rows_written_total",
			Help:      "Rows appended to the CSV log.",
		}),
		channel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_value",
			Help:      "Latest converted value per channel.",
		}, []string{"channel"}),
		switchState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pressure_switch_closed",
			Help:      "1 when the pressure switch is closed.",
		}),
		lastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_update_timestamp_seconds",
			Help:      "Unix time of the latest published snapshot.",
		}),
		samplingUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sampling_up",
			Help:      "1 while the sampler is running.",
		}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{
		m.ticks, m.readErrors, m.sinkErrors, m.csvRows,
		m.channel, m.switchState, m.lastUpdate, m.samplingUp,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Name identifies the metrics sink in logs.
func (m *Metrics) Name() string { return "metrics" }

// Publish records one reading. It never fails.
func (m *Metrics) Publish(_ context.Context, r models.Reading) error {
	for i, v := range r.Snapshot.Values() {
		m.channel.WithLabelValues(models.SnapshotFieldNames[i]).Set(v)
	}
	if r.Snapshot.PressureSwitch == models.SwitchClosed {
		m.switchState.Set(1)
	} else {
		m.switchState.Set(0)
	}
	m.lastUpdate.Set(float64(r.TakenAt.UnixNano()) / 1e9)
	m.ticks.Inc()
	return nil
}

func (m *Metrics) ReadError() { m.readErrors.Inc() }

func (m *Metrics) SinkError(sink string) { m.sinkErrors.WithLabelValues(sink).Inc() }

func (m *Metrics) RowWritten() { m.csvRows.Inc() }

func (m *Metrics) SetSampling(up bool) {
	if up {
		m.samplingUp.Set(1)
		return
	}
	m.samplingUp.Set(0)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

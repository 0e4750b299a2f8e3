// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes decode counters through Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ik5/vgmcodec/codec"
)

// Fault labels.
const (
	FaultTableIndex = "table_index"
	FaultShortRead  = "short_read"
	FaultState      = "state"
	FaultOther      = "other"
)

// Collector holds the decode metrics of one registry. A nil *Collector
// records nothing, so callers need not check for it.
type Collector struct {
	samplesDecoded *prometheus.CounterVec
	faults         *prometheus.CounterVec
	loops          prometheus.Counter
	streams        prometheus.Gauge
	callSamples    prometheus.Histogram
}

// New registers the collector's metrics with reg. Passing nil creates
// metrics that are not registered anywhere.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		samplesDecoded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vgmcodec_samples_decoded_total",
			Help: "Samples decoded, all channels counted, by codec",
		}, []string{"codec"}),
		faults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vgmcodec_decode_faults_total",
			Help: "Decode calls that failed, by codec and fault class",
		}, []string{"codec", "fault"}),
		loops: f.NewCounter(prometheus.CounterOpts{
			Name: "vgmcodec_loops_total",
			Help: "Loop jumps taken by streams",
		}),
		streams: f.NewGauge(prometheus.GaugeOpts{
			Name: "vgmcodec_open_streams",
			Help: "Streams opened and not yet closed",
		}),
		callSamples: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vgmcodec_decode_call_samples",
			Help:    "Samples per channel requested by a single decode call",
			Buckets: []float64{1, 16, 64, 256, 1024, 4096, 16384},
		}),
	}
}

func (c *Collector) Decoded(k codec.Kind, samples int) {
	if c == nil {
		return
	}
	c.samplesDecoded.WithLabelValues(k.String()).Add(float64(samples))
}

func (c *Collector) ObserveCall(samples int) {
	if c == nil {
		return
	}
	c.callSamples.Observe(float64(samples))
}

func (c *Collector) Fault(k codec.Kind, err error) {
	if c == nil {
		return
	}
	c.faults.WithLabelValues(k.String(), FaultLabel(err)).Inc()
}

func (c *Collector) Loop() {
	if c == nil {
		return
	}
	c.loops.Inc()
}

func (c *Collector) StreamOpened() {
	if c == nil {
		return
	}
	c.streams.Inc()
}

func (c *Collector) StreamClosed() {
	if c == nil {
		return
	}
	c.streams.Dec()
}

// FaultLabel classifies a decode error for the fault counter.
func FaultLabel(err error) string {
	switch {
	case errors.Is(err, codec.ErrOutOfRangeTableIndex):
		return FaultTableIndex
	case errors.Is(err, codec.ErrShortRead):
		return FaultShortRead
	case errors.Is(err, codec.ErrInvalidStateTransition):
		return FaultState
	default:
		return FaultOther
	}
}

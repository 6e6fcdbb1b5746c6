package provider

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	apperrors "video2csv/internal/app/errors"
)

// Metrics holds the Prometheus collectors for backend calls
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "v2csv",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Transcription backend calls by outcome.",
		}, []string{"backend", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "v2csv",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Wall clock time of transcription backend calls.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"backend"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.latency)
	}
	return m
}

// RecordSuccess records a successful call
func (m *Metrics) RecordSuccess(backend string, latency time.Duration) {
	m.requests.WithLabelValues(backend, "ok").Inc()
	m.latency.WithLabelValues(backend).Observe(latency.Seconds())
}

// RecordFailure records a failed call, labelled by error kind
func (m *Metrics) RecordFailure(backend string, latency time.Duration, err error) {
	m.requests.WithLabelValues(backend, apperrors.Kind(err)).Inc()
	m.latency.WithLabelValues(backend).Observe(latency.Seconds())
}

// Instrument wraps b so every Transcribe call is recorded
func (m *Metrics) Instrument(b Backend) Backend {
	if m == nil {
		return b
	}
	return &instrumentedBackend{Backend: b, metrics: m}
}

type instrumentedBackend struct {
	Backend
	metrics *Metrics
}

func (ib *instrumentedBackend) Transcribe(ctx context.Context, waveformPath string) (*RawPayload, error) {
	start := time.Now()
	payload, err := ib.Backend.Transcribe(ctx, waveformPath)
	if err != nil {
		ib.metrics.RecordFailure(ib.Name(), time.Since(start), err)
		return nil, err
	}
	ib.metrics.RecordSuccess(ib.Name(), time.Since(start))
	return payload, nil
}

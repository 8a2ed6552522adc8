// Package metrics instruments conversions and segmentation with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	MetricsNamespace           = "lexdoc"
	MetricsSubsystemSystem     = "system"
	MetricsSubsystemConversion = "conversion"
	MetricsSubsystemSegment    = "segment"

	MetricsVersionLabel = "version"
)

// Conversion outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type Metrics interface {
	GetRegistry() *prometheus.Registry

	ObserveConversion(format, outcome string, elapsed float64)
	ObserveSections(sectionType string, count int)
	ObserveReferences(kind string, count int)

	WriteTextfile(path string) error
}

type InstanceInfo struct {
	Version string
}

// metrics used to instrument conversions in prometheus.
type metrics struct {
	registry *prometheus.Registry

	startTime prometheus.Gauge
	info      prometheus.Gauge

	conversionsTotal   *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec

	sectionsTotal   *prometheus.CounterVec
	referencesTotal *prometheus.CounterVec
}

// NewMetrics creates a collector set on a private registry.
func NewMetrics(info InstanceInfo) Metrics {
	m := &metrics{}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
		Namespace: MetricsNamespace,
	}))
	m.registry.MustRegister(collectors.NewGoCollector())

	m.startTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemSystem,
		Name:      "start_timestamp_seconds",
		Help:      "The time the process started.",
	})
	m.startTime.SetToCurrentTime()
	m.registry.MustRegister(m.startTime)

	m.info = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   MetricsNamespace,
		Subsystem:   MetricsSubsystemSystem,
		Name:        "info",
		Help:        "The lexdoc version.",
		ConstLabels: map[string]string{MetricsVersionLabel: info.Version},
	})
	m.info.Set(1)
	m.registry.MustRegister(m.info)

	m.conversionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemConversion,
		Name:      "total",
		Help:      "The total number of document conversions.",
	}, []string{"format", "outcome"})
	m.registry.MustRegister(m.conversionsTotal)

	m.conversionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemConversion,
		Name:      "duration_seconds",
		Help:      "Time to convert a document.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"format"})
	m.registry.MustRegister(m.conversionDuration)

	m.sectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemSegment,
		Name:      "sections_total",
		Help:      "The total number of sections detected.",
	}, []string{"type"})
	m.registry.MustRegister(m.sectionsTotal)

	m.referencesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: MetricsSubsystemSegment,
		Name:      "references_total",
		Help:      "The total number of cross references detected.",
	}, []string{"kind"})
	m.registry.MustRegister(m.referencesTotal)

	return m
}

func (m *metrics) GetRegistry() *prometheus.Registry {
	return m.registry
}

func (m *metrics) ObserveConversion(format, outcome string, elapsed float64) {
	if m != nil {
		m.conversionsTotal.With(prometheus.Labels{"format": format, "outcome": outcome}).Inc()
		m.conversionDuration.With(prometheus.Labels{"format": format}).Observe(elapsed)
	}
}

func (m *metrics) ObserveSections(sectionType string, count int) {
	if m != nil && count > 0 {
		m.sectionsTotal.With(prometheus.Labels{"type": sectionType}).Add(float64(count))
	}
}

func (m *metrics) ObserveReferences(kind string, count int) {
	if m != nil && count > 0 {
		m.referencesTotal.With(prometheus.Labels{"kind": kind}).Add(float64(count))
	}
}

// WriteTextfile writes the registry in the text exposition format, for
// collection by the node exporter's textfile collector.
func (m *metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

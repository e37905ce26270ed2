package prometheus

import (
	"slices"
	"strings"
	"time"

	"github.com/Layr-Labs/slotledger/internal/metrics/metricsTypes"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type PrometheusMetricsConfig struct {
	Metrics map[metricsTypes.MetricsType][]metricsTypes.MetricsTypeConfig
	// Registerer defaults to the global prometheus registry.
	Registerer prometheus.Registerer
}

type PrometheusMetricsClient struct {
	logger *zap.Logger
	config *PrometheusMetricsConfig

	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
	labelNames map[string][]string
}

func NewPrometheusMetricsClient(config *PrometheusMetricsConfig, l *zap.Logger) (*PrometheusMetricsClient, error) {
	if config.Registerer == nil {
		config.Registerer = prometheus.DefaultRegisterer
	}
	client := &PrometheusMetricsClient{
		config: config,
		logger: l,

		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		labelNames: make(map[string][]string),
	}

	if err := client.initializeTypes(); err != nil {
		return nil, err
	}
	return client, nil
}

// metricName maps dotted metric names onto the prometheus charset.
func metricName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

func (pmc *PrometheusMetricsClient) exists(name string) bool {
	_, c := pmc.counters[name]
	_, g := pmc.gauges[name]
	_, h := pmc.histograms[name]
	return c || g || h
}

func (pmc *PrometheusMetricsClient) initializeTypes() error {
	for t, types := range pmc.config.Metrics {
		for _, mt := range types {
			if pmc.exists(mt.Name) {
				pmc.logger.Sugar().Warnw("Prometheus metric already exists for type",
					zap.String("type", string(t)),
					zap.String("name", mt.Name),
				)
				continue
			}
			var collector prometheus.Collector
			switch t {
			case metricsTypes.MetricsType_Incr:
				pmc.counters[mt.Name] = prometheus.NewCounterVec(prometheus.CounterOpts{
					Name: metricName(mt.Name),
				}, mt.Labels)
				collector = pmc.counters[mt.Name]
			case metricsTypes.MetricsType_Gauge:
				pmc.gauges[mt.Name] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
					Name: metricName(mt.Name),
				}, mt.Labels)
				collector = pmc.gauges[mt.Name]
			case metricsTypes.MetricsType_Timing:
				pmc.histograms[mt.Name] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
					Name: metricName(mt.Name),
				}, mt.Labels)
				collector = pmc.histograms[mt.Name]
			default:
				continue
			}
			pmc.labelNames[mt.Name] = mt.Labels
			if err := pmc.config.Registerer.Register(collector); err != nil {
				pmc.logger.Sugar().Errorw("Failed to register prometheus metric",
					zap.String("name", mt.Name),
					zap.Error(err),
				)
				return err
			}
		}
	}
	return nil
}

// formatLabels drops labels the metric was not declared with, such as sink
// wide defaults.
func (pmc *PrometheusMetricsClient) formatLabels(name string, labels []metricsTypes.MetricsLabel) prometheus.Labels {
	l := make(prometheus.Labels)
	for _, label := range labels {
		if slices.Contains(pmc.labelNames[name], label.Name) {
			l[label.Name] = label.Value
		}
	}
	return l
}

func (pmc *PrometheusMetricsClient) Incr(name string, labels []metricsTypes.MetricsLabel, value float64) error {
	m, ok := pmc.counters[name]
	if !ok {
		pmc.logger.Sugar().Warnw("Prometheus incr not found", zap.String("name", name))
		return nil
	}
	c, err := m.GetMetricWith(pmc.formatLabels(name, labels))
	if err != nil {
		return err
	}
	c.Add(value)
	return nil
}

func (pmc *PrometheusMetricsClient) Gauge(name string, value float64, labels []metricsTypes.MetricsLabel) error {
	m, ok := pmc.gauges[name]
	if !ok {
		pmc.logger.Sugar().Warnw("Prometheus gauge not found", zap.String("name", name))
		return nil
	}
	g, err := m.GetMetricWith(pmc.formatLabels(name, labels))
	if err != nil {
		return err
	}
	g.Set(value)
	return nil
}

func (pmc *PrometheusMetricsClient) Timing(name string, value time.Duration, labels []metricsTypes.MetricsLabel) error {
	m, ok := pmc.histograms[name]
	if !ok {
		pmc.logger.Sugar().Warnw("Prometheus histogram not found", zap.String("name", name))
		return nil
	}
	h, err := m.GetMetricWith(pmc.formatLabels(name, labels))
	if err != nil {
		return err
	}
	h.Observe(float64(value.Microseconds()))
	return nil
}

package metricsTypes

import "time"

type IMetricsClient interface {
	Incr(name string, labels []MetricsLabel, value float64) error
	Gauge(name string, value float64, labels []MetricsLabel) error
	Timing(name string, value time.Duration, labels []MetricsLabel) error
}

type MetricsLabel struct {
	Name  string
	Value string
}

type MetricsType string

var (
	MetricsType_Incr   MetricsType = "incr"
	MetricsType_Gauge  MetricsType = "gauge"
	MetricsType_Timing MetricsType = "timing"
)

type MetricsTypeConfig struct {
	Name   string
	Labels []string
}

var (
	Metric_Incr_SlotRead  = "slot.read"
	Metric_Incr_SlotWrite = "slot.write"
	Metric_Incr_SlotHas   = "slot.has"
	Metric_Incr_SlotError = "slot.error"

	Metric_Gauge_SlotCount = "slot.count"

	Metric_Timing_SlotDuration = "slot.duration"
)

// every slot metric carries the pointer and the operation
var slotLabels = []string{"pointer", "op"}

var MetricTypes = map[MetricsType][]MetricsTypeConfig{
	MetricsType_Incr: {
		MetricsTypeConfig{
			Name:   Metric_Incr_SlotRead,
			Labels: slotLabels,
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_SlotWrite,
			Labels: slotLabels,
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_SlotHas,
			Labels: slotLabels,
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_SlotError,
			Labels: slotLabels,
		},
	},
	MetricsType_Gauge: {
		MetricsTypeConfig{
			Name:   Metric_Gauge_SlotCount,
			Labels: []string{},
		},
	},
	MetricsType_Timing: {
		MetricsTypeConfig{
			Name:   Metric_Timing_SlotDuration,
			Labels: slotLabels,
		},
	},
}

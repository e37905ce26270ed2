package metered

import (
	"strconv"
	"time"

	"github.com/Layr-Labs/slotledger/internal/metrics"
	"github.com/Layr-Labs/slotledger/internal/metrics/metricsTypes"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"go.uber.org/zap"
)

// MeteredBackend reports slot traffic for the backend it wraps.
type MeteredBackend struct {
	backend storage.Backend
	sink    *metrics.MetricsSink
	logger  *zap.Logger
}

func NewMeteredBackend(b storage.Backend, sink *metrics.MetricsSink, l *zap.Logger) *MeteredBackend {
	return &MeteredBackend{
		backend: b,
		sink:    sink,
		logger:  l,
	}
}

func slotLabels(pointer uint16, op string) []metricsTypes.MetricsLabel {
	return []metricsTypes.MetricsLabel{
		{Name: "pointer", Value: strconv.FormatUint(uint64(pointer), 10)},
		{Name: "op", Value: op},
	}
}

func (m *MeteredBackend) record(name string, pointer uint16, op string, start time.Time, err error) {
	labels := slotLabels(pointer, op)
	if err != nil {
		name = metricsTypes.Metric_Incr_SlotError
	}
	if mErr := m.sink.Incr(name, labels, 1); mErr != nil {
		m.logger.Sugar().Warnw("Failed to record slot metric", zap.String("metric", name), zap.Error(mErr))
	}
	if mErr := m.sink.Timing(metricsTypes.Metric_Timing_SlotDuration, time.Since(start), labels); mErr != nil {
		m.logger.Sugar().Warnw("Failed to record slot timing", zap.Error(mErr))
	}
}

func (m *MeteredBackend) Get(pointer uint16, offset word256.Word256, def storage.Slot) (storage.Slot, error) {
	start := time.Now()
	v, err := m.backend.Get(pointer, offset, def)
	m.record(metricsTypes.Metric_Incr_SlotRead, pointer, "get", start, err)
	return v, err
}

func (m *MeteredBackend) Set(pointer uint16, offset word256.Word256, value storage.Slot) error {
	start := time.Now()
	err := m.backend.Set(pointer, offset, value)
	m.record(metricsTypes.Metric_Incr_SlotWrite, pointer, "set", start, err)
	return err
}

func (m *MeteredBackend) Has(pointer uint16, offset word256.Word256) (bool, error) {
	start := time.Now()
	ok, err := m.backend.Has(pointer, offset)
	m.record(metricsTypes.Metric_Incr_SlotHas, pointer, "has", start, err)
	return ok, err
}

// Iterate forwards to the wrapped backend and reports how many slots it holds.
func (m *MeteredBackend) Iterate(fn func(addr storage.SlotAddress, value storage.Slot) error) error {
	it, ok := m.backend.(storage.Iterable)
	if !ok {
		return storage.ErrNotImplemented
	}
	count := 0
	err := it.Iterate(func(addr storage.SlotAddress, value storage.Slot) error {
		count++
		return fn(addr, value)
	})
	if err == nil {
		if mErr := m.sink.Gauge(metricsTypes.Metric_Gauge_SlotCount, float64(count), nil); mErr != nil {
			m.logger.Sugar().Warnw("Failed to record slot count", zap.Error(mErr))
		}
	}
	return err
}

package metered

import (
	"testing"
	"time"

	"github.com/Layr-Labs/slotledger/internal/metrics"
	"github.com/Layr-Labs/slotledger/internal/metrics/metricsTypes"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/storage/memory"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingClient struct {
	incrs  map[string]int
	gauges map[string]float64
	timed  int
}

func newRecordingClient() *recordingClient {
	return &recordingClient{incrs: map[string]int{}, gauges: map[string]float64{}}
}

func (r *recordingClient) Incr(name string, labels []metricsTypes.MetricsLabel, value float64) error {
	r.incrs[name] += int(value)
	return nil
}

func (r *recordingClient) Gauge(name string, value float64, labels []metricsTypes.MetricsLabel) error {
	r.gauges[name] = value
	return nil
}

func (r *recordingClient) Timing(name string, value time.Duration, labels []metricsTypes.MetricsLabel) error {
	r.timed++
	return nil
}

type failingBackend struct{}

func (failingBackend) Get(uint16, word256.Word256, storage.Slot) (storage.Slot, error) {
	return storage.Slot{}, errors.New("disk on fire")
}
func (failingBackend) Set(uint16, word256.Word256, storage.Slot) error { return nil }
func (failingBackend) Has(uint16, word256.Word256) (bool, error)      { return false, nil }

func setup(b storage.Backend) (*MeteredBackend, *recordingClient) {
	rc := newRecordingClient()
	sink, _ := metrics.NewMetricsSink(&metrics.MetricsSinkConfig{}, []metricsTypes.IMetricsClient{rc})
	return NewMeteredBackend(b, sink, zap.NewNop()), rc
}

func Test_MeteredBackend(t *testing.T) {
	t.Run("Should count reads writes and checks", func(t *testing.T) {
		m, rc := setup(memory.NewMemoryBackend(zap.NewNop()))

		assert.Nil(t, m.Set(1, word256.One, storage.Slot{31: 1}))
		v, err := m.Get(1, word256.One, storage.Slot{})
		assert.Nil(t, err)
		assert.Equal(t, byte(1), v[31])
		has, err := m.Has(1, word256.One)
		assert.Nil(t, err)
		assert.True(t, has)

		assert.Equal(t, 1, rc.incrs[metricsTypes.Metric_Incr_SlotWrite])
		assert.Equal(t, 1, rc.incrs[metricsTypes.Metric_Incr_SlotRead])
		assert.Equal(t, 1, rc.incrs[metricsTypes.Metric_Incr_SlotHas])
		assert.Equal(t, 3, rc.timed)
	})

	t.Run("Should count failures as errors", func(t *testing.T) {
		m, rc := setup(failingBackend{})

		_, err := m.Get(1, word256.One, storage.Slot{})
		assert.NotNil(t, err)
		assert.Equal(t, 1, rc.incrs[metricsTypes.Metric_Incr_SlotError])
		assert.Equal(t, 0, rc.incrs[metricsTypes.Metric_Incr_SlotRead])
	})

	t.Run("Should report the slot count after iterating", func(t *testing.T) {
		m, rc := setup(memory.NewMemoryBackend(zap.NewNop()))
		assert.Nil(t, m.Set(1, word256.One, storage.Slot{}))
		assert.Nil(t, m.Set(1, word256.FromU64(2), storage.Slot{}))

		assert.Nil(t, m.Iterate(func(storage.SlotAddress, storage.Slot) error { return nil }))
		assert.Equal(t, 2.0, rc.gauges[metricsTypes.Metric_Gauge_SlotCount])
	})

	t.Run("Should refuse to iterate a backend that cannot", func(t *testing.T) {
		m, _ := setup(failingBackend{})
		err := m.Iterate(func(storage.SlotAddress, storage.Slot) error { return nil })
		assert.ErrorIs(t, err, storage.ErrNotImplemented)
	})
}

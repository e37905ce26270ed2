package dogstatsd

import (
	"testing"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/Layr-Labs/slotledger/internal/metrics/metricsTypes"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func Test_DogStatsdMetricsClient(t *testing.T) {
	t.Run("Should format labels as tags", func(t *testing.T) {
		c := newWithClient(&statsd.NoOpClient{}, 0.5, zap.NewNop())
		tags := c.formatLabels([]metricsTypes.MetricsLabel{{Name: "pointer", Value: "7"}, {Name: "op", Value: "set"}})
		assert.Equal(t, []string{"pointer:7", "op:set"}, tags)
	})

	t.Run("Should clamp the sample rate", func(t *testing.T) {
		assert.Equal(t, 1.0, newWithClient(&statsd.NoOpClient{}, 0, zap.NewNop()).sampleRate)
		assert.Equal(t, 1.0, newWithClient(&statsd.NoOpClient{}, 3, zap.NewNop()).sampleRate)
		assert.Equal(t, 0.25, newWithClient(&statsd.NoOpClient{}, 0.25, zap.NewNop()).sampleRate)
	})

	t.Run("Should forward metrics to the client", func(t *testing.T) {
		c := newWithClient(&statsd.NoOpClient{}, 1, zap.NewNop())
		assert.Nil(t, c.Incr(metricsTypes.Metric_Incr_SlotWrite, nil, 1))
		assert.Nil(t, c.Gauge(metricsTypes.Metric_Gauge_SlotCount, 3, nil))
		assert.Nil(t, c.Timing(metricsTypes.Metric_Timing_SlotDuration, time.Millisecond, nil))
		c.Flush()
	})
}

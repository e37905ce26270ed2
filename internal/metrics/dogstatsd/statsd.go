package dogstatsd

import (
	"fmt"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/Layr-Labs/slotledger/internal/metrics/metricsTypes"
	"go.uber.org/zap"
)

const namespace = "slotledger."

type DogStatsdMetricsClient struct {
	client     statsd.ClientInterface
	logger     *zap.Logger
	sampleRate float64
}

func NewDogStatsdMetricsClient(addr string, sampleRate float64, l *zap.Logger) (*DogStatsdMetricsClient, error) {
	s, err := statsd.New(addr,
		statsd.WithNamespace(namespace),
		statsd.WithBufferFlushInterval(time.Second*2),
	)
	if err != nil {
		l.Sugar().Errorw("Failed to create dogstatsd metrics client", zap.Error(err))
		return nil, err
	}
	return newWithClient(s, sampleRate, l), nil
}

func newWithClient(c statsd.ClientInterface, sampleRate float64, l *zap.Logger) *DogStatsdMetricsClient {
	// a zero rate would drop everything
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = 1
	}
	return &DogStatsdMetricsClient{
		client:     c,
		logger:     l,
		sampleRate: sampleRate,
	}
}

func (s *DogStatsdMetricsClient) formatLabels(labels []metricsTypes.MetricsLabel) []string {
	tags := make([]string, 0, len(labels))
	for _, label := range labels {
		tags = append(tags, fmt.Sprintf("%s:%s", label.Name, label.Value))
	}
	return tags
}

func (s *DogStatsdMetricsClient) Incr(name string, labels []metricsTypes.MetricsLabel, value float64) error {
	return s.client.Count(name, int64(value), s.formatLabels(labels), s.sampleRate)
}

func (s *DogStatsdMetricsClient) Gauge(name string, value float64, labels []metricsTypes.MetricsLabel) error {
	return s.client.Gauge(name, value, s.formatLabels(labels), s.sampleRate)
}

func (s *DogStatsdMetricsClient) Timing(name string, value time.Duration, labels []metricsTypes.MetricsLabel) error {
	return s.client.Timing(name, value, s.formatLabels(labels), s.sampleRate)
}

func (s *DogStatsdMetricsClient) Flush() {
	if err := s.client.Flush(); err != nil {
		s.logger.Sugar().Errorw("Failed to flush dogstatsd metrics client", zap.Error(err))
	}
}

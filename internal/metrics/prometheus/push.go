package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const pushJobName = "slotledger"

// Push sends everything gathered to a pushgateway. The command line tools
// exit long before anything could scrape them, so they push instead.
func Push(url string, gatherer prometheus.Gatherer, l *zap.Logger) error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if err := push.New(url, pushJobName).Gatherer(gatherer).Push(); err != nil {
		l.Sugar().Errorw("Failed to push prometheus metrics", zap.String("url", url), zap.Error(err))
		return errors.Wrap(err, "failed to push metrics")
	}
	l.Sugar().Debugw("Pushed prometheus metrics", zap.String("url", url))
	return nil
}

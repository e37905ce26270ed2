package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConfig struct {
	Debug bool
	// Format is "json" (the default) or "console".
	Format string
	// Service is attached to every entry when set.
	Service string
}

// NewLogger builds a logger that writes to stderr, leaving stdout to command
// output.
func NewLogger(cfg *LoggerConfig, options ...zap.Option) (*zap.Logger, error) {
	mergedOptions := []zap.Option{
		zap.WithCaller(true),
	}
	mergedOptions = append(mergedOptions, options...)

	c := zap.NewProductionConfig()
	c.OutputPaths = []string{"stderr"}
	c.ErrorOutputPaths = []string{"stderr"}
	c.Sampling = nil

	switch cfg.Format {
	case "", "json":
		c.Encoding = "json"
		c.EncoderConfig = zap.NewProductionEncoderConfig()
		c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "console":
		c.Encoding = "console"
		c.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		c.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, errors.Errorf("unknown log format '%s'", cfg.Format)
	}

	if cfg.Debug {
		c.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	if cfg.Service != "" {
		c.InitialFields = map[string]interface{}{"service": cfg.Service}
	}

	return c.Build(mergedOptions...)
}

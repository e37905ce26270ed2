package cmd

import (
	"strconv"

	"github.com/Layr-Labs/slotledger/internal/config"
	"github.com/Layr-Labs/slotledger/internal/logger"
	"github.com/Layr-Labs/slotledger/internal/metrics"
	"github.com/Layr-Labs/slotledger/internal/metrics/metricsTypes"
	"github.com/Layr-Labs/slotledger/internal/metrics/prometheus"
	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/Layr-Labs/slotledger/pkg/postgres"
	"github.com/Layr-Labs/slotledger/pkg/slots"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/storage/levelDb"
	"github.com/Layr-Labs/slotledger/pkg/storage/memory"
	"github.com/Layr-Labs/slotledger/pkg/storage/metered"
	pgStorage "github.com/Layr-Labs/slotledger/pkg/storage/postgres"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ledger is everything a command needs to touch slots.
type ledger struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend storage.Iterable
	session *slots.Session
	hasher  slots.KeyHasher
	clients []metricsTypes.IMetricsClient
	closers []func() error
}

type flusher interface {
	Flush()
}

func openLedger() (*ledger, error) {
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l, err := logger.NewLogger(&logger.LoggerConfig{
		Debug:   cfg.Debug,
		Format:  string(cfg.LogFormat),
		Service: "slotledger",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	l.Sugar().Debugw("Loaded config", zap.String("config", cfg.String()))

	lg := &ledger{cfg: cfg, logger: l}

	hasher, err := slots.HasherFromName(string(cfg.KeyHasher))
	if err != nil {
		return nil, err
	}
	lg.hasher = hasher

	backend, err := lg.openBackend()
	if err != nil {
		lg.Close()
		return nil, err
	}

	clients, err := metrics.InitMetricsSinksFromConfig(cfg, l)
	if err != nil {
		lg.Close()
		return nil, err
	}
	lg.clients = clients
	sink, err := metrics.NewMetricsSink(&metrics.MetricsSinkConfig{
		DefaultLabels: []metricsTypes.MetricsLabel{{Name: "backend", Value: string(cfg.StorageConfig.Backend)}},
	}, clients)
	if err != nil {
		lg.Close()
		return nil, err
	}

	lg.backend = metered.NewMeteredBackend(backend, sink, l)
	lg.session = slots.NewSession(lg.backend, l)
	return lg, nil
}

func (lg *ledger) openBackend() (storage.Iterable, error) {
	switch lg.cfg.StorageConfig.Backend {
	case config.StorageBackend_LevelDb:
		b, err := levelDb.NewLevelDbBackend(lg.cfg.StorageConfig.LevelDbPath, lg.logger)
		if err != nil {
			return nil, err
		}
		lg.closers = append(lg.closers, b.Close)
		return b, nil
	case config.StorageBackend_Postgres:
		db, grm, err := postgres.Open(&lg.cfg.DatabaseConfig, true, lg.logger)
		if err != nil {
			return nil, err
		}
		lg.closers = append(lg.closers, db.Close)
		return pgStorage.NewPostgresBackend(grm, lg.logger), nil
	default:
		lg.logger.Sugar().Warnw("Using the memory backend; nothing will be persisted")
		return memory.NewMemoryBackend(lg.logger), nil
	}
}

// Close flushes metrics and releases the backend.
func (lg *ledger) Close() {
	for _, c := range lg.clients {
		if f, ok := c.(flusher); ok {
			f.Flush()
		}
	}
	if lg.cfg.PrometheusConfig.Enabled && lg.cfg.PrometheusConfig.PushUrl != "" {
		if err := prometheus.Push(lg.cfg.PrometheusConfig.PushUrl, nil, lg.logger); err != nil {
			lg.logger.Sugar().Errorw("Failed to push metrics on close", zap.Error(err))
		}
	}
	for _, c := range lg.closers {
		if err := c(); err != nil {
			lg.logger.Sugar().Errorw("Failed to close backend", zap.Error(err))
		}
	}
	_ = lg.logger.Sync()
}

func parsePointer(s string) (uint16, error) {
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid pointer '%s'", s)
	}
	return uint16(p), nil
}

// parseWord accepts decimal or 0x prefixed hex.
func parseWord(s string) (word256.Word256, error) {
	x, err := mpint.FromString(s, 10)
	if err != nil {
		return word256.Zero, errors.Wrapf(err, "invalid 256 bit value '%s'", s)
	}
	return word256.FromMPInt(x)
}

func parseAddress(pointer, subPointer string) (storage.SlotAddress, error) {
	p, err := parsePointer(pointer)
	if err != nil {
		return storage.SlotAddress{}, err
	}
	sub, err := parseWord(subPointer)
	if err != nil {
		return storage.SlotAddress{}, err
	}
	return storage.NewSlotAddress(p, sub), nil
}

func parseSlot(s string) (storage.Slot, error) {
	w, err := parseWord(s)
	if err != nil {
		return storage.Slot{}, err
	}
	b, _ := w.Bytes32()
	return b, nil
}

func withLedger(fn func(lg *ledger) error) error {
	lg, err := openLedger()
	if err != nil {
		return err
	}
	defer lg.Close()

	if err := fn(lg); err != nil {
		lg.logger.Sugar().Errorw("Command failed", zap.Error(err))
		return err
	}
	return nil
}

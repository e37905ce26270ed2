package memory

import (
	"sync"

	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

// MemoryBackend keeps slots in insertion order. It never returns an error.
type MemoryBackend struct {
	mu     sync.Mutex
	slots  *orderedmap.OrderedMap[storage.SlotKey, storage.Slot]
	logger *zap.Logger
}

func NewMemoryBackend(l *zap.Logger) *MemoryBackend {
	return &MemoryBackend{
		slots:  orderedmap.New[storage.SlotKey, storage.Slot](),
		logger: l,
	}
}

func (m *MemoryBackend) Get(pointer uint16, offset word256.Word256, def storage.Slot) (storage.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.slots.Get(storage.KeyFor(pointer, offset)); ok {
		return v, nil
	}
	return def, nil
}

func (m *MemoryBackend) Set(pointer uint16, offset word256.Word256, value storage.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots.Set(storage.KeyFor(pointer, offset), value)
	m.logger.Sugar().Debugw("Stored slot",
		zap.Uint16("pointer", pointer),
		zap.String("offset", offset.Hex()),
	)
	return nil
}

func (m *MemoryBackend) Has(pointer uint16, offset word256.Word256) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.slots.Get(storage.KeyFor(pointer, offset))
	return ok, nil
}

// Iterate visits slots in the order they were first written.
func (m *MemoryBackend) Iterate(fn func(addr storage.SlotAddress, value storage.Slot) error) error {
	m.mu.Lock()
	pairs := make([]*orderedmap.Pair[storage.SlotKey, storage.Slot], 0, m.slots.Len())
	for pair := m.slots.Oldest(); pair != nil; pair = pair.Next() {
		pairs = append(pairs, &orderedmap.Pair[storage.SlotKey, storage.Slot]{Key: pair.Key, Value: pair.Value})
	}
	m.mu.Unlock()

	for _, pair := range pairs {
		if err := fn(pair.Key.Address(), pair.Value); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryBackend) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots.Len()
}

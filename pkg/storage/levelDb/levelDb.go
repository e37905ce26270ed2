package levelDb

import (
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lvlStorage "github.com/syndtr/goleveldb/leveldb/storage"
	"go.uber.org/zap"
)

// LevelDbBackend stores each slot under its 34 byte SlotKey. Keys sort in
// address order, so iteration is ordered by pointer then subpointer.
type LevelDbBackend struct {
	db     *leveldb.DB
	logger *zap.Logger
}

// NewLevelDbBackend opens (or creates) a database at path.
func NewLevelDbBackend(path string, l *zap.Logger) (*LevelDbBackend, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		l.Sugar().Errorw("Failed to open leveldb", zap.String("path", path), zap.Error(err))
		return nil, errors.Wrapf(err, "failed to open leveldb at '%s'", path)
	}
	return &LevelDbBackend{db: db, logger: l}, nil
}

// NewInMemoryLevelDbBackend is backed by goleveldb's memory storage.
func NewInMemoryLevelDbBackend(l *zap.Logger) (*LevelDbBackend, error) {
	db, err := leveldb.Open(lvlStorage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory leveldb")
	}
	return &LevelDbBackend{db: db, logger: l}, nil
}

func (b *LevelDbBackend) Get(pointer uint16, offset word256.Word256, def storage.Slot) (storage.Slot, error) {
	key := storage.KeyFor(pointer, offset)
	v, err := b.db.Get(key[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		b.logger.Sugar().Errorw("Failed to read slot",
			zap.Uint16("pointer", pointer),
			zap.String("offset", offset.Hex()),
			zap.Error(err),
		)
		return def, errors.Wrap(err, "failed to read slot")
	}
	var s storage.Slot
	copy(s[:], v)
	return s, nil
}

func (b *LevelDbBackend) Set(pointer uint16, offset word256.Word256, value storage.Slot) error {
	key := storage.KeyFor(pointer, offset)
	if err := b.db.Put(key[:], value[:], nil); err != nil {
		b.logger.Sugar().Errorw("Failed to write slot",
			zap.Uint16("pointer", pointer),
			zap.String("offset", offset.Hex()),
			zap.Error(err),
		)
		return errors.Wrap(err, "failed to write slot")
	}
	return nil
}

func (b *LevelDbBackend) Has(pointer uint16, offset word256.Word256) (bool, error) {
	key := storage.KeyFor(pointer, offset)
	ok, err := b.db.Has(key[:], nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to check slot")
	}
	return ok, nil
}

func (b *LevelDbBackend) Iterate(fn func(addr storage.SlotAddress, value storage.Slot) error) error {
	it := b.db.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		key, err := storage.ParseSlotKey(it.Key())
		if err != nil {
			return err
		}
		var s storage.Slot
		copy(s[:], it.Value())
		if err := fn(key.Address(), s); err != nil {
			return err
		}
	}
	return errors.Wrap(it.Error(), "failed to iterate slots")
}

func (b *LevelDbBackend) Close() error {
	return b.db.Close()
}

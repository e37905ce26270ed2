package slots

import (
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"go.uber.org/zap"
)

// Session is the view of a backend for one external call. Every write goes
// straight through to the backend and is remembered, so a read of the same
// coordinate through any accessor observes it.
//
// Accessors remember the generation they hydrated in and the write version
// of every slot they cover. Reset bumps the generation, which makes every
// accessor bound to the session reload on next use; a write through any
// accessor bumps the slot's version, which makes the others reload it.
type Session struct {
	backend    storage.Backend
	logger     *zap.Logger
	written    map[storage.SlotKey]storage.Slot
	versions   map[storage.SlotKey]uint64
	generation uint64
}

func NewSession(b storage.Backend, l *zap.Logger) *Session {
	return &Session{
		backend:  b,
		logger:   l,
		written:  make(map[storage.SlotKey]storage.Slot),
		versions: make(map[storage.SlotKey]uint64),
	}
}

// Reset starts a new call. Nothing cached before it is trusted after it.
func (s *Session) Reset() {
	s.written = make(map[storage.SlotKey]storage.Slot)
	s.versions = make(map[storage.SlotKey]uint64)
	s.generation++
}

func (s *Session) Generation() uint64 {
	return s.generation
}

func (s *Session) Backend() storage.Backend {
	return s.backend
}

func (s *Session) Get(addr storage.SlotAddress, def storage.Slot) (storage.Slot, error) {
	if v, ok := s.written[addr.Key()]; ok {
		return v, nil
	}
	v, err := s.backend.Get(addr.Pointer, addr.SubPointer, def)
	if err != nil {
		s.logger.Sugar().Errorw("Failed to load slot", zap.String("slot", addr.String()), zap.Error(err))
		return def, err
	}
	return v, nil
}

func (s *Session) Set(addr storage.SlotAddress, value storage.Slot) error {
	if err := s.backend.Set(addr.Pointer, addr.SubPointer, value); err != nil {
		s.logger.Sugar().Errorw("Failed to store slot", zap.String("slot", addr.String()), zap.Error(err))
		return err
	}
	key := addr.Key()
	s.written[key] = value
	s.versions[key]++
	return nil
}

// version sums the write versions of span consecutive slots from addr.
// Versions only grow within a generation, so the sum changes exactly when
// one of the slots was written.
func (s *Session) version(addr storage.SlotAddress, span int) uint64 {
	var v uint64
	for i := 0; i < span; i++ {
		v += s.versions[addr.Offset(uint64(i)).Key()]
	}
	return v
}

func (s *Session) Has(addr storage.SlotAddress) (bool, error) {
	if _, ok := s.written[addr.Key()]; ok {
		return true, nil
	}
	return s.backend.Has(addr.Pointer, addr.SubPointer)
}

// hydration tracks whether an accessor's cached value is still valid.
type hydration struct {
	loaded     bool
	generation uint64
	addr       storage.SlotAddress
	span       int
	version    uint64
}

func (h *hydration) stale(s *Session) bool {
	return !h.loaded || h.generation != s.generation || h.version != s.version(h.addr, h.span)
}

// mark records that the span slots from addr were just loaded or written.
func (h *hydration) mark(s *Session, addr storage.SlotAddress, span int) {
	h.loaded = true
	h.generation = s.generation
	h.addr = addr
	h.span = span
	h.version = s.version(addr, span)
}

package slots

import (
	"github.com/Layr-Labs/slotledger/pkg/safeMath"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/pkg/errors"
)

// KeyedSlotMap stores one integer per key under a single pointer. The slot
// offset is the hash of the map prefix and the key.
type KeyedSlotMap[K Key, T safeMath.Number[T]] struct {
	session *Session
	pointer uint16
	scope   [][]byte
	def     T
	hasher  KeyHasher
}

// NewKeyedSlotMap binds a map to pointer. A nil hasher means keccak256.
func NewKeyedSlotMap[K Key, T safeMath.Number[T]](s *Session, pointer uint16, prefix string, def T, hasher KeyHasher) *KeyedSlotMap[K, T] {
	if hasher == nil {
		hasher = Keccak256Hasher
	}
	return &KeyedSlotMap[K, T]{
		session: s,
		pointer: pointer,
		scope:   [][]byte{[]byte(prefix)},
		def:     def,
		hasher:  hasher,
	}
}

func (m *KeyedSlotMap[K, T]) Address(key K) storage.SlotAddress {
	parts := make([][]byte, 0, len(m.scope)+1)
	parts = append(parts, m.scope...)
	parts = append(parts, key.KeyBytes())
	return storage.NewSlotAddress(m.pointer, m.hasher(preimage(parts...)))
}

// Slot returns the scalar accessor for key, for callers that need the
// arithmetic mutators.
func (m *KeyedSlotMap[K, T]) Slot(key K) *ScalarSlot[T] {
	return newScalarSlotAt(m.session, m.Address(key), m.def)
}

func (m *KeyedSlotMap[K, T]) Get(key K) (T, error) {
	return m.Slot(key).Value()
}

func (m *KeyedSlotMap[K, T]) Set(key K, value T) error {
	b, err := value.Bytes32()
	if err != nil {
		return err
	}
	return m.session.Set(m.Address(key), b)
}

func (m *KeyedSlotMap[K, T]) Has(key K) (bool, error) {
	return m.session.Has(m.Address(key))
}

func (m *KeyedSlotMap[K, T]) Delete(key K) error {
	return errors.Wrap(storage.ErrNotImplemented, "delete")
}

func (m *KeyedSlotMap[K, T]) Clear() error {
	return errors.Wrap(storage.ErrNotImplemented, "clear")
}

// CompoundKeyedSlotMap stores one integer per (K1, K2) pair, for example an
// allowance per owner and spender.
type CompoundKeyedSlotMap[K1 Key, K2 Key, T safeMath.Number[T]] struct {
	session *Session
	pointer uint16
	prefix  []byte
	def     T
	hasher  KeyHasher
}

func NewCompoundKeyedSlotMap[K1 Key, K2 Key, T safeMath.Number[T]](s *Session, pointer uint16, prefix string, def T, hasher KeyHasher) *CompoundKeyedSlotMap[K1, K2, T] {
	if hasher == nil {
		hasher = Keccak256Hasher
	}
	return &CompoundKeyedSlotMap[K1, K2, T]{
		session: s,
		pointer: pointer,
		prefix:  []byte(prefix),
		def:     def,
		hasher:  hasher,
	}
}

// Inner returns the map of K2 values scoped to k1.
func (m *CompoundKeyedSlotMap[K1, K2, T]) Inner(k1 K1) *KeyedSlotMap[K2, T] {
	return &KeyedSlotMap[K2, T]{
		session: m.session,
		pointer: m.pointer,
		scope:   [][]byte{m.prefix, k1.KeyBytes()},
		def:     m.def,
		hasher:  m.hasher,
	}
}

func (m *CompoundKeyedSlotMap[K1, K2, T]) Address(k1 K1, k2 K2) storage.SlotAddress {
	return m.Inner(k1).Address(k2)
}

func (m *CompoundKeyedSlotMap[K1, K2, T]) Get(k1 K1, k2 K2) (T, error) {
	return m.Inner(k1).Get(k2)
}

func (m *CompoundKeyedSlotMap[K1, K2, T]) Set(k1 K1, k2 K2, value T) error {
	return m.Inner(k1).Set(k2, value)
}

func (m *CompoundKeyedSlotMap[K1, K2, T]) Has(k1 K1, k2 K2) (bool, error) {
	return m.Inner(k1).Has(k2)
}

func (m *CompoundKeyedSlotMap[K1, K2, T]) Delete(k1 K1, k2 K2) error {
	return errors.Wrap(storage.ErrNotImplemented, "delete")
}

func (m *CompoundKeyedSlotMap[K1, K2, T]) Clear() error {
	return errors.Wrap(storage.ErrNotImplemented, "clear")
}

package slots

import (
	"github.com/Layr-Labs/slotledger/pkg/safeMath"
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
)

// ScalarSlot is one integer stored in a single slot. The value is loaded on
// first use and every mutation is written through before it returns.
type ScalarSlot[T safeMath.Number[T]] struct {
	session *Session
	addr    storage.SlotAddress
	def     T
	value   T
	state   hydration
}

func NewScalarSlot[T safeMath.Number[T]](s *Session, pointer uint16, subPointer word256.Word256, def T) *ScalarSlot[T] {
	return newScalarSlotAt(s, storage.NewSlotAddress(pointer, subPointer), def)
}

func newScalarSlotAt[T safeMath.Number[T]](s *Session, addr storage.SlotAddress, def T) *ScalarSlot[T] {
	return &ScalarSlot[T]{
		session: s,
		addr:    addr,
		def:     def,
	}
}

func (s *ScalarSlot[T]) Address() storage.SlotAddress {
	return s.addr
}

func (s *ScalarSlot[T]) ensureValue() error {
	if !s.state.stale(s.session) {
		return nil
	}
	def, err := s.def.Bytes32()
	if err != nil {
		return err
	}
	slot, err := s.session.Get(s.addr, def)
	if err != nil {
		return err
	}
	s.value = s.def.Decode32(slot)
	s.state.mark(s.session, s.addr, 1)
	return nil
}

func (s *ScalarSlot[T]) store(v T) error {
	b, err := v.Bytes32()
	if err != nil {
		return err
	}
	if err := s.session.Set(s.addr, b); err != nil {
		return err
	}
	s.value = v
	s.state.mark(s.session, s.addr, 1)
	return nil
}

func (s *ScalarSlot[T]) Value() (T, error) {
	if err := s.ensureValue(); err != nil {
		var zero T
		return zero, err
	}
	return s.value, nil
}

// Set stores v. Nothing is written when v equals the current value.
func (s *ScalarSlot[T]) Set(v T) error {
	if err := s.ensureValue(); err != nil {
		return err
	}
	if s.value.Cmp(v) == 0 {
		return nil
	}
	return s.store(v)
}

func (s *ScalarSlot[T]) apply(op func(T) (T, error)) error {
	if err := s.ensureValue(); err != nil {
		return err
	}
	v, err := op(s.value)
	if err != nil {
		return err
	}
	return s.store(v)
}

func (s *ScalarSlot[T]) Add(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Add(cur, v) })
}

func (s *ScalarSlot[T]) Sub(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Sub(cur, v) })
}

func (s *ScalarSlot[T]) Mul(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Mul(cur, v) })
}

func (s *ScalarSlot[T]) Div(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Div(cur, v) })
}

func (s *ScalarSlot[T]) Mod(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Mod(cur, v) })
}

func (s *ScalarSlot[T]) Pow(exp uint) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Pow(cur, exp) })
}

func (s *ScalarSlot[T]) Inc() error {
	return s.apply(safeMath.Inc[T])
}

func (s *ScalarSlot[T]) Dec() error {
	return s.apply(safeMath.Dec[T])
}

// Shifts and bitwise operators drop bits past 256 silently.
func (s *ScalarSlot[T]) Shl(n uint) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Shl(cur, n).And(maxOf[T]()), nil })
}

func (s *ScalarSlot[T]) Shr(n uint) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Shr(cur, n), nil })
}

func (s *ScalarSlot[T]) And(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.And(cur, v), nil })
}

func (s *ScalarSlot[T]) Or(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Or(cur, v), nil })
}

func (s *ScalarSlot[T]) Xor(v T) error {
	return s.apply(func(cur T) (T, error) { return safeMath.Xor(cur, v), nil })
}

func (s *ScalarSlot[T]) compare(v T) (int, error) {
	if err := s.ensureValue(); err != nil {
		return 0, err
	}
	return s.value.Cmp(v), nil
}

func (s *ScalarSlot[T]) Eq(v T) (bool, error) {
	c, err := s.compare(v)
	return c == 0, err
}

func (s *ScalarSlot[T]) Ne(v T) (bool, error) {
	c, err := s.compare(v)
	return c != 0, err
}

func (s *ScalarSlot[T]) Lt(v T) (bool, error) {
	c, err := s.compare(v)
	return c < 0, err
}

func (s *ScalarSlot[T]) Lte(v T) (bool, error) {
	c, err := s.compare(v)
	return c <= 0, err
}

func (s *ScalarSlot[T]) Gt(v T) (bool, error) {
	c, err := s.compare(v)
	return c > 0, err
}

func (s *ScalarSlot[T]) Gte(v T) (bool, error) {
	c, err := s.compare(v)
	return c >= 0, err
}

// maxOf returns 2^256-1 in the representation of T.
func maxOf[T safeMath.Number[T]]() T {
	var b [32]byte
	for i := range b {
		b[i] = 0xff
	}
	var zero T
	return zero.Decode32(b)
}

package slots

import (
	"github.com/Layr-Labs/slotledger/pkg/storage"
	"github.com/Layr-Labs/slotledger/pkg/word256"
)

func flagSlot(v bool) storage.Slot {
	var s storage.Slot
	if v {
		s[31] = 1
	}
	return s
}

// FlagSlot is a boolean stored as 0 or 1 at subpointer zero of its pointer.
type FlagSlot struct {
	session *Session
	addr    storage.SlotAddress
	def     bool
	value   bool
	state   hydration
}

func NewFlagSlot(s *Session, pointer uint16, def bool) *FlagSlot {
	return &FlagSlot{
		session: s,
		addr:    storage.NewSlotAddress(pointer, word256.Zero),
		def:     def,
	}
}

func (f *FlagSlot) Address() storage.SlotAddress {
	return f.addr
}

func (f *FlagSlot) Value() (bool, error) {
	if f.state.stale(f.session) {
		slot, err := f.session.Get(f.addr, flagSlot(f.def))
		if err != nil {
			return false, err
		}
		f.value = !slot.IsZero()
		f.state.mark(f.session, f.addr, 1)
	}
	return f.value, nil
}

func (f *FlagSlot) Set(v bool) error {
	if err := f.session.Set(f.addr, flagSlot(v)); err != nil {
		return err
	}
	f.value = v
	f.state.mark(f.session, f.addr, 1)
	return nil
}

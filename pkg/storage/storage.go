package storage

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Layr-Labs/slotledger/pkg/word256"
	"github.com/pkg/errors"
)

var (
	ErrValueTooLarge  = errors.New("value is too long")
	ErrNotImplemented = errors.New("not implemented")
	ErrInvalidKey     = errors.New("invalid slot key")
)

// Slot is the atomic storage unit, a 32 byte big-endian payload.
type Slot [32]byte

func (s Slot) IsZero() bool {
	return s == Slot{}
}

func (s Slot) Hex() string {
	return "0x" + hex.EncodeToString(s[:])
}

// Backend is the byte addressable key-value store that slots live in. A slot
// is addressed by a pointer (namespace) and a 256 bit offset within it.
type Backend interface {
	// Get returns the stored slot, or def when nothing was ever stored.
	Get(pointer uint16, offset word256.Word256, def Slot) (Slot, error)
	Set(pointer uint16, offset word256.Word256, value Slot) error
	Has(pointer uint16, offset word256.Word256) (bool, error)
}

// Iterable is implemented by backends that can enumerate every stored slot.
type Iterable interface {
	Backend
	Iterate(fn func(addr SlotAddress, value Slot) error) error
}

// SlotAddress is the two part coordinate of a slot.
type SlotAddress struct {
	Pointer    uint16
	SubPointer word256.Word256
}

func NewSlotAddress(pointer uint16, subPointer word256.Word256) SlotAddress {
	return SlotAddress{Pointer: pointer, SubPointer: subPointer}
}

// Offset returns the address i slots after a, wrapping at 2^256.
func (a SlotAddress) Offset(i uint64) SlotAddress {
	return SlotAddress{Pointer: a.Pointer, SubPointer: a.SubPointer.Add(word256.FromU64(i))}
}

// SlotKey is the fixed width encoding of a SlotAddress: the pointer big-endian
// followed by the subpointer big-endian. Byte order matches address order.
type SlotKey [34]byte

func (a SlotAddress) Key() SlotKey {
	var k SlotKey
	binary.BigEndian.PutUint16(k[0:2], a.Pointer)
	sub, _ := a.SubPointer.Bytes32()
	copy(k[2:], sub[:])
	return k
}

func KeyFor(pointer uint16, offset word256.Word256) SlotKey {
	return NewSlotAddress(pointer, offset).Key()
}

func (k SlotKey) Address() SlotAddress {
	var sub [32]byte
	copy(sub[:], k[2:])
	return SlotAddress{
		Pointer:    binary.BigEndian.Uint16(k[0:2]),
		SubPointer: word256.FromBytes32(sub),
	}
}

// ParseSlotKey decodes a key read back from a backend.
func ParseSlotKey(b []byte) (SlotKey, error) {
	var k SlotKey
	if len(b) != len(k) {
		return k, errors.Wrapf(ErrInvalidKey, "expected %d bytes, got %d", len(k), len(b))
	}
	copy(k[:], b)
	return k, nil
}

func (a SlotAddress) String() string {
	return fmt.Sprintf("%d:%s", a.Pointer, a.SubPointer.Hex())
}

// Tables.
type StoredSlot struct {
	Pointer    uint16 `gorm:"primaryKey;autoIncrement:false"`
	SubPointer string `gorm:"primaryKey"`
	Value      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (StoredSlot) TableName() string {
	return "slots"
}

// Not tables

// SlotRow is the flat representation used for exports.
type SlotRow struct {
	Pointer    uint16 `csv:"pointer" json:"pointer"`
	SubPointer string `csv:"subpointer" json:"subpointer"`
	Value      string `csv:"value" json:"value"`
}

func NewSlotRow(addr SlotAddress, value Slot) *SlotRow {
	return &SlotRow{
		Pointer:    addr.Pointer,
		SubPointer: addr.SubPointer.Hex(),
		Value:      value.Hex(),
	}
}

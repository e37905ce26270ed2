package word256

import (
	"encoding/binary"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
)

// Word512 holds a double width product. It has no arithmetic of its own.
type Word512 struct {
	limbs [8]uint64
}

func (w Word512) Limbs() [8]uint64 {
	return w.limbs
}

// Low returns the least significant 256 bits.
func (w Word512) Low() Word256 {
	return Word256{limbs: [4]uint64(w.limbs[0:4])}
}

// High returns the most significant 256 bits.
func (w Word512) High() Word256 {
	return Word256{limbs: [4]uint64(w.limbs[4:8])}
}

func (w Word512) IsZero() bool {
	for _, l := range w.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// Bytes64 encodes w big-endian.
func (w Word512) Bytes64() [64]byte {
	var b [64]byte
	for i, l := range w.limbs {
		binary.BigEndian.PutUint64(b[56-8*i:64-8*i], l)
	}
	return b
}

func (w Word512) MPInt() mpint.Int {
	b := w.Bytes64()
	return mpint.FromBytesBE(b[:])
}

func (w Word512) String() string {
	return w.MPInt().String()
}

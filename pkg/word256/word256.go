// Package word256 implements fixed width 256 bit unsigned integers as four
// 64 bit limbs, least significant first, and the 512 bit products of two of
// them.
package word256

import (
	"encoding/binary"
	"math/bits"

	"github.com/Layr-Labs/slotledger/pkg/mpint"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var ErrDivideByZero = errors.New("word256: divide by zero")

// Word256 is a 256 bit unsigned integer with wrapping arithmetic. It is a
// plain value; copies never alias.
//
// overflow is set only by Mul when the full product did not fit in 256 bits.
type Word256 struct {
	limbs    [4]uint64
	overflow bool
}

var (
	Zero = Word256{}
	One  = FromU64(1)
	Max  = Word256{limbs: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}
)

func FromU64(v uint64) Word256 {
	return Word256{limbs: [4]uint64{v}}
}

// FromLimbs builds a word from limbs ordered least significant first.
func FromLimbs(l0, l1, l2, l3 uint64) Word256 {
	return Word256{limbs: [4]uint64{l0, l1, l2, l3}}
}

// FromBytes32 decodes a big-endian 32 byte slot payload.
func FromBytes32(b [32]byte) Word256 {
	return Word256{limbs: [4]uint64{
		binary.BigEndian.Uint64(b[24:32]),
		binary.BigEndian.Uint64(b[16:24]),
		binary.BigEndian.Uint64(b[8:16]),
		binary.BigEndian.Uint64(b[0:8]),
	}}
}

// FromBytes decodes up to 32 bytes. Longer input keeps only the least
// significant 32 bytes.
func FromBytes(b []byte, bigEndian bool) Word256 {
	var buf [32]byte
	if bigEndian {
		if len(b) > 32 {
			b = b[len(b)-32:]
		}
		copy(buf[32-len(b):], b)
	} else {
		if len(b) > 32 {
			b = b[:32]
		}
		for i, c := range b {
			buf[31-i] = c
		}
	}
	return FromBytes32(buf)
}

// Decode32 is FromBytes32 in method form; the receiver only selects the type.
func (w Word256) Decode32(b [32]byte) Word256 {
	return FromBytes32(b)
}

func FromUint256(u *uint256.Int) Word256 {
	return Word256{limbs: [4]uint64(*u)}
}

func (w Word256) ToUint256() *uint256.Int {
	u := uint256.Int(w.limbs)
	return &u
}

// FromDecimal parses a base 10 string.
func FromDecimal(s string) (Word256, error) {
	u, err := uint256.FromDecimal(s)
	if err != nil {
		return Zero, errors.Wrapf(err, "failed to parse %q", s)
	}
	return FromUint256(u), nil
}

// FromMPInt converts an arbitrary precision value that fits in 256 bits.
func FromMPInt(x mpint.Int) (Word256, error) {
	b, err := x.Bytes32()
	if err != nil {
		return Zero, err
	}
	return FromBytes32(b), nil
}

func (w Word256) MPInt() mpint.Int {
	b, _ := w.Bytes32()
	return mpint.FromBytes32(b)
}

// Limbs returns the limbs, least significant first.
func (w Word256) Limbs() [4]uint64 {
	return w.limbs
}

// Bytes32 encodes w big-endian. It never fails.
func (w Word256) Bytes32() ([32]byte, error) {
	var b [32]byte
	binary.BigEndian.PutUint64(b[0:8], w.limbs[3])
	binary.BigEndian.PutUint64(b[8:16], w.limbs[2])
	binary.BigEndian.PutUint64(b[16:24], w.limbs[1])
	binary.BigEndian.PutUint64(b[24:32], w.limbs[0])
	return b, nil
}

// Overflow reports whether the multiplication that produced w lost high bits.
func (w Word256) Overflow() bool {
	return w.overflow
}

func (w Word256) Overflowed() bool {
	return w.overflow
}

func (w Word256) IsZero() bool {
	return w.limbs[0]|w.limbs[1]|w.limbs[2]|w.limbs[3] == 0
}

func (w Word256) BitLen() int {
	for i := 3; i >= 0; i-- {
		if w.limbs[i] != 0 {
			return i*64 + bits.Len64(w.limbs[i])
		}
	}
	return 0
}

func (w Word256) Cmp(o Word256) int {
	for i := 3; i >= 0; i-- {
		if w.limbs[i] != o.limbs[i] {
			if w.limbs[i] < o.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Eq compares values only; the overflow flag is ignored.
func (w Word256) Eq(o Word256) bool { return w.limbs == o.limbs }
func (w Word256) Lt(o Word256) bool { return w.Cmp(o) < 0 }
func (w Word256) Gt(o Word256) bool { return w.Cmp(o) > 0 }

func (w Word256) String() string {
	return w.ToUint256().Dec()
}

func (w Word256) Hex() string {
	return w.ToUint256().Hex()
}
